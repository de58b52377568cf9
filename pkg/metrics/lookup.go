package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LookupMetrics records the outcome of remote nutrition lookups per provider.
type LookupMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewLookupMetrics registers the lookup metrics on the provided registerer.
func NewLookupMetrics(reg prometheus.Registerer) *LookupMetrics {
	if reg == nil {
		return &LookupMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nutrition_lookup_duration_seconds",
		Help:    "Duration of nutrition provider lookups in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"provider"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_lookup_success",
		Help: "Nutrition lookups that returned a usable record.",
	}, []string{"provider"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nutrition_lookup_failure",
		Help: "Nutrition lookups that errored or came back empty.",
	}, []string{"provider"})
	reg.MustRegister(duration, success, failure)
	return &LookupMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the lookup duration for the named provider.
func (l *LookupMetrics) ObserveDuration(provider string, duration time.Duration) {
	if l == nil || l.duration == nil {
		return
	}
	l.duration.WithLabelValues(normalizeLabel(provider)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named provider.
func (l *LookupMetrics) IncSuccess(provider string) {
	if l == nil || l.success == nil {
		return
	}
	l.success.WithLabelValues(normalizeLabel(provider)).Inc()
}

// IncFailure increments the failure counter for the named provider.
func (l *LookupMetrics) IncFailure(provider string) {
	if l == nil || l.failure == nil {
		return
	}
	l.failure.WithLabelValues(normalizeLabel(provider)).Inc()
}

func normalizeLabel(provider string) string {
	if provider == "" {
		return "unknown"
	}
	return provider
}
