package discounts

import (
	"context"
	"io"
	"testing"

	"github.com/prismqdev/foodler-backend/pkg/config"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/kupi"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

type fakeFetcher struct {
	byCategory   []kupi.Discount
	lastCategory string
	lastShop     string
	lastQuery    string
	err          error
}

func (f *fakeFetcher) DiscountsByCategory(ctx context.Context, category string) ([]kupi.Discount, error) {
	f.lastCategory = category
	return f.byCategory, f.err
}

func (f *fakeFetcher) DiscountsByShop(ctx context.Context, shop string) ([]kupi.Discount, error) {
	f.lastShop = shop
	return f.byCategory, f.err
}

func (f *fakeFetcher) SearchDiscounts(ctx context.Context, query string) ([]kupi.Discount, error) {
	f.lastQuery = query
	return f.byCategory, f.err
}

func newTestService(t *testing.T, fetcher Fetcher) Service {
	t.Helper()
	svc, err := NewService(fetcher, config.DiscountsConfig{DefaultCategory: "potraviny"},
		logger.New(logger.Options{Output: io.Discard}))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestGetDiscountsDefaultsCategory(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc := newTestService(t, fetcher)

	if _, err := svc.GetDiscounts(context.Background(), ""); err != nil {
		t.Fatalf("GetDiscounts: %v", err)
	}
	if fetcher.lastCategory != "potraviny" {
		t.Fatalf("expected default category, got %q", fetcher.lastCategory)
	}
}

func TestGetDiscountsAbsorbsClientErrors(t *testing.T) {
	fetcher := &fakeFetcher{err: pkgerrors.New(pkgerrors.CodeDependency, "portal down")}
	svc := newTestService(t, fetcher)

	discounts, err := svc.GetDiscounts(context.Background(), "maso")
	if err != nil {
		t.Fatalf("expected absorbed error, got %v", err)
	}
	if len(discounts) != 0 {
		t.Fatalf("expected empty result, got %+v", discounts)
	}
}

func TestGetBestDealsSortsByPercent(t *testing.T) {
	fetcher := &fakeFetcher{byCategory: []kupi.Discount{
		{Name: "A", DiscountPercent: 10},
		{Name: "B", DiscountPercent: 40},
		{Name: "C", DiscountPercent: 25},
	}}
	svc := newTestService(t, fetcher)

	deals, err := svc.GetBestDeals(context.Background(), 2)
	if err != nil {
		t.Fatalf("GetBestDeals: %v", err)
	}
	if len(deals) != 2 {
		t.Fatalf("expected 2 deals, got %d", len(deals))
	}
	if deals[0].Name != "B" || deals[1].Name != "C" {
		t.Fatalf("unexpected order: %+v", deals)
	}
}

func TestGetBestDealsUpstreamFailureYieldsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{err: pkgerrors.New(pkgerrors.CodeDependency, "portal down")}
	svc := newTestService(t, fetcher)

	deals, err := svc.GetBestDeals(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected absorbed error, got %v", err)
	}
	if len(deals) != 0 {
		t.Fatalf("expected empty result, got %+v", deals)
	}
}
