package nutrition

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
	"github.com/prismqdev/foodler-backend/pkg/metrics"
	"github.com/prismqdev/foodler-backend/pkg/types"
)

// Aggregator queries an ordered list of nutrition providers and returns the
// first usable answer. Provider failures are logged and absorbed; only a
// fully exhausted list surfaces as an error.
type Aggregator struct {
	providers []Provider
	barcode   BarcodeProvider
	logger    *logger.Logger
	metrics   *metrics.LookupMetrics
}

// NewAggregator builds the aggregator. The provider order is the fallback
// order; barcode may be nil when no source supports barcodes.
func NewAggregator(providers []Provider, barcode BarcodeProvider, logg *logger.Logger, m *metrics.LookupMetrics) (*Aggregator, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one nutrition provider required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Aggregator{
		providers: providers,
		barcode:   barcode,
		logger:    logg,
		metrics:   m,
	}, nil
}

// GetNutritionInfo returns the first record with positive calories. A record
// without calories is treated the same as no record, so a sparse entry in
// one source does not shadow a complete one in the next.
func (a *Aggregator) GetNutritionInfo(ctx context.Context, name string) (*types.NutritionRecord, error) {
	var failures error
	for _, p := range a.providers {
		pctx := a.logger.WithProvider(ctx, p.Name())
		start := time.Now()

		record, err := p.Lookup(pctx, name)
		a.metrics.ObserveDuration(p.Name(), time.Since(start))
		if err != nil {
			a.metrics.IncFailure(p.Name())
			a.logger.Warn(pctx, "nutrition lookup failed, trying next provider")
			failures = multierr.Append(failures, err)
			continue
		}
		if record == nil || record.Calories <= 0 {
			a.metrics.IncFailure(p.Name())
			continue
		}

		a.metrics.IncSuccess(p.Name())
		return record, nil
	}

	a.logExhausted(ctx, "nutrition lookup exhausted all providers", name, failures)
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no nutrition data found for %q", name))
}

// GetDetailedInfo returns the first non-nil detailed record.
func (a *Aggregator) GetDetailedInfo(ctx context.Context, name string) (*types.DetailedNutritionRecord, error) {
	var failures error
	for _, p := range a.providers {
		pctx := a.logger.WithProvider(ctx, p.Name())
		start := time.Now()

		record, err := p.LookupDetailed(pctx, name)
		a.metrics.ObserveDuration(p.Name(), time.Since(start))
		if err != nil {
			a.metrics.IncFailure(p.Name())
			a.logger.Warn(pctx, "detailed lookup failed, trying next provider")
			failures = multierr.Append(failures, err)
			continue
		}
		if record == nil {
			a.metrics.IncFailure(p.Name())
			continue
		}

		a.metrics.IncSuccess(p.Name())
		return record, nil
	}

	a.logExhausted(ctx, "detailed lookup exhausted all providers", name, failures)
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no detailed data found for %q", name))
}

// SearchFoods queries providers in order until limit hits are collected.
// Later providers are only asked for the remainder.
func (a *Aggregator) SearchFoods(ctx context.Context, query string, limit int) ([]types.BasicFoodRecord, error) {
	if limit <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "limit must be positive")
	}

	var results []types.BasicFoodRecord
	for _, p := range a.providers {
		remaining := limit - len(results)
		if remaining <= 0 {
			break
		}

		pctx := a.logger.WithProvider(ctx, p.Name())
		hits, err := p.Search(pctx, query, remaining)
		if err != nil {
			a.logger.Warn(pctx, "search failed, trying next provider")
			continue
		}
		results = append(results, hits...)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// GetProductByBarcode resolves a barcode through the designated provider.
func (a *Aggregator) GetProductByBarcode(ctx context.Context, code string) (*types.NutritionRecord, error) {
	if a.barcode == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no barcode provider configured")
	}

	pctx := a.logger.WithProvider(ctx, a.barcode.Name())
	start := time.Now()

	record, err := a.barcode.LookupBarcode(pctx, code)
	a.metrics.ObserveDuration(a.barcode.Name(), time.Since(start))
	if err != nil {
		a.metrics.IncFailure(a.barcode.Name())
		a.logger.Error(pctx, "barcode lookup failed", err)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no product found for barcode %q", code))
	}
	if record == nil {
		a.metrics.IncFailure(a.barcode.Name())
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no product found for barcode %q", code))
	}

	a.metrics.IncSuccess(a.barcode.Name())
	return record, nil
}

func (a *Aggregator) logExhausted(ctx context.Context, msg, name string, failures error) {
	ctx = a.logger.WithField(ctx, "query", name)
	if failures != nil {
		a.logger.Error(ctx, msg, failures)
		return
	}
	a.logger.Info(ctx, msg)
}
