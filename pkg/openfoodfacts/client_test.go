package openfoodfacts

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prismqdev/foodler-backend/pkg/config"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard})
}

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(config.NutritionConfig{
		OpenFoodFactsBaseURL: baseURL,
		CountryCode:          "cz",
		RequestTimeout:       2 * time.Second,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestNewClientValidatesConfig(t *testing.T) {
	if _, err := NewClient(config.NutritionConfig{}, testLogger()); err == nil {
		t.Fatal("expected error for empty base URL")
	}
	if _, err := NewClient(config.NutritionConfig{OpenFoodFactsBaseURL: "https://example.com"}, nil); err == nil {
		t.Fatal("expected error for nil logger")
	}
}

func TestLookupMapsNutriments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi/search.pl" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("search_terms") != "rice" {
			t.Errorf("unexpected search_terms %q", q.Get("search_terms"))
		}
		if q.Get("tag_0") != "cz" {
			t.Errorf("expected country tag filter, got %q", q.Get("tag_0"))
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"products":[{
			"product_name":"Basmati Rice","brands":"Lagris","quantity":"500 g",
			"nutriments":{"energy-kcal_100g":351,"proteins_100g":8.1,
			"carbohydrates_100g":77.6,"fat_100g":0.6,"fiber_100g":1.4,
			"sugars_100g":0.2,"salt_100g":0.01,"saturated-fat_100g":0.2}}]}`)
	}))
	defer srv.Close()

	record, err := testClient(t, srv.URL).Lookup(context.Background(), "rice")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if record == nil {
		t.Fatal("expected a record")
	}
	if record.Name != "Basmati Rice" || record.Calories != 351 || record.Protein != 8.1 {
		t.Fatalf("unexpected record mapping: %+v", record)
	}
	if record.Source != ProviderName {
		t.Fatalf("unexpected source %q", record.Source)
	}
}

func TestLookupReturnsNilOnNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"products":[]}`)
	}))
	defer srv.Close()

	record, err := testClient(t, srv.URL).Lookup(context.Background(), "unobtainium")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestLookupWrapsUpstreamFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(t, srv.URL).Lookup(context.Background(), "rice")
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestLookupBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/8594001234567" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		io.WriteString(w, `{"status":1,"product":{"product_name":"Kefir",
			"nutriments":{"energy-kcal_100g":54,"proteins_100g":3.3}}}`)
	}))
	defer srv.Close()

	record, err := testClient(t, srv.URL).LookupBarcode(context.Background(), "8594001234567")
	if err != nil {
		t.Fatalf("LookupBarcode: %v", err)
	}
	if record == nil || record.Name != "Kefir" || record.Calories != 54 {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestLookupBarcodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":0}`)
	}))
	defer srv.Close()

	record, err := testClient(t, srv.URL).LookupBarcode(context.Background(), "000")
	if err != nil {
		t.Fatalf("LookupBarcode: %v", err)
	}
	if record != nil {
		t.Fatalf("expected nil record, got %+v", record)
	}
}

func TestSearchTruncatesAndMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page_size"); got != "2" {
			t.Errorf("expected page_size=2, got %q", got)
		}
		io.WriteString(w, `{"products":[
			{"product_name":"Milk 1","brands":"A"},
			{"product_name":"Milk 2","brands":"B"}]}`)
	}))
	defer srv.Close()

	records, err := testClient(t, srv.URL).Search(context.Background(), "milk", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Milk 1" || records[1].Brand != "B" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
