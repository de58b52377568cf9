package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/prismqdev/foodler-backend/internal/discounts"
	"github.com/prismqdev/foodler-backend/internal/fridge"
	"github.com/prismqdev/foodler-backend/internal/nutrition"
	"github.com/prismqdev/foodler-backend/pkg/config"
	"github.com/prismqdev/foodler-backend/pkg/db"
	"github.com/prismqdev/foodler-backend/pkg/db/models"
	"github.com/prismqdev/foodler-backend/pkg/kupi"
	"github.com/prismqdev/foodler-backend/pkg/logger"
	"github.com/prismqdev/foodler-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubProvider struct {
	record *types.NutritionRecord
}

func (stubProvider) Name() string { return "stub" }

func (s stubProvider) Lookup(ctx context.Context, name string) (*types.NutritionRecord, error) {
	return s.record, nil
}

func (s stubProvider) LookupDetailed(ctx context.Context, name string) (*types.DetailedNutritionRecord, error) {
	if s.record == nil {
		return nil, nil
	}
	return &types.DetailedNutritionRecord{NutritionRecord: *s.record}, nil
}

func (s stubProvider) Search(ctx context.Context, query string, limit int) ([]types.BasicFoodRecord, error) {
	if s.record == nil {
		return nil, nil
	}
	return []types.BasicFoodRecord{{Name: s.record.Name, Source: "stub"}}, nil
}

type stubFetcher struct{}

func (stubFetcher) DiscountsByCategory(ctx context.Context, category string) ([]kupi.Discount, error) {
	return []kupi.Discount{{Name: "Máslo", Store: "Lidl", DiscountPercent: 30}}, nil
}

func (stubFetcher) DiscountsByShop(ctx context.Context, shop string) ([]kupi.Discount, error) {
	return nil, nil
}

func (stubFetcher) SearchDiscounts(ctx context.Context, query string) ([]kupi.Discount, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{Output: io.Discard})

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.FoodItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	fridgeSvc, err := fridge.NewService(fridge.NewRepository(conn), db.NewFromGorm(conn), logg)
	if err != nil {
		t.Fatalf("fridge service: %v", err)
	}

	agg, err := nutrition.NewAggregator(
		[]nutrition.Provider{stubProvider{record: &types.NutritionRecord{Name: "rice", Calories: 351}}},
		nil, logg, nil)
	if err != nil {
		t.Fatalf("aggregator: %v", err)
	}

	discountsSvc, err := discounts.NewService(stubFetcher{}, config.DiscountsConfig{DefaultCategory: "potraviny"}, logg)
	if err != nil {
		t.Fatalf("discounts service: %v", err)
	}

	cfg := &config.Config{App: config.AppConfig{Env: "dev"}}
	return NewRouter(cfg, logg, stubPinger{}, fridgeSvc, agg, discountsSvc, nil)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestFridgeItemLifecycle(t *testing.T) {
	router := newTestRouter(t)

	body := bytes.NewBufferString(`{"name":"rice","quantity":500,"unit":"g"}`)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/items", body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created struct {
		Data fridge.ItemDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.Data.ID == 0 {
		t.Fatal("expected assigned id")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/items?name=rice", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	advance := bytes.NewBufferString(`{"exclude_ids":[]}`)
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/fridge/rotation/advance", advance))
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/fridge/items/rotation", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("rotation: expected 200, got %d", rec.Code)
	}
}

func TestFridgeValidationErrorEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/fridge/items", bytes.NewBufferString(`{"quantity":10}`))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var payload types.ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if payload.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %q", payload.Error.Code)
	}
}

func TestNutritionLookupRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nutrition/lookup?name=rice", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data types.NutritionRecord `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.Calories != 351 {
		t.Fatalf("unexpected record: %+v", payload.Data)
	}
}

func TestNutritionLookupRequiresName(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nutrition/lookup", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDiscountsBestRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/discounts/best?limit=5", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestCalculatorNeedsRoute(t *testing.T) {
	router := newTestRouter(t)

	body := bytes.NewBufferString(`{"age":30,"weight_kg":80,"height_cm":180,"gender":"male","activity_level":"moderate"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/calculator/needs", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Data nutrition.DailyNeeds `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Data.Calories != 2874.71 {
		t.Fatalf("unexpected calories %v", payload.Data.Calories)
	}
}

func TestBarcodeWithoutProviderReturnsNotFound(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nutrition/barcode/859", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
