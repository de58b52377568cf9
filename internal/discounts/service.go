package discounts

import (
	"context"
	"fmt"
	"sort"

	"github.com/prismqdev/foodler-backend/pkg/config"
	"github.com/prismqdev/foodler-backend/pkg/kupi"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

// Fetcher is the slice of the kupi client the service needs.
type Fetcher interface {
	DiscountsByCategory(ctx context.Context, category string) ([]kupi.Discount, error)
	DiscountsByShop(ctx context.Context, shop string) ([]kupi.Discount, error)
	SearchDiscounts(ctx context.Context, query string) ([]kupi.Discount, error)
}

// Service exposes store discount browsing. Upstream failures degrade to
// empty results; a dead discount portal never breaks the surface.
type Service interface {
	GetDiscounts(ctx context.Context, category string) ([]kupi.Discount, error)
	GetDiscountsByShop(ctx context.Context, shop string) ([]kupi.Discount, error)
	SearchProduct(ctx context.Context, name string) ([]kupi.Discount, error)
	GetBestDeals(ctx context.Context, limit int) ([]kupi.Discount, error)
}

type service struct {
	client          Fetcher
	defaultCategory string
	logger          *logger.Logger
}

// NewService constructs a discounts service instance.
func NewService(client Fetcher, cfg config.DiscountsConfig, logg *logger.Logger) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("kupi client required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		client:          client,
		defaultCategory: cfg.DefaultCategory,
		logger:          logg,
	}, nil
}

// GetDiscounts lists offers in the category, defaulting to groceries.
func (s *service) GetDiscounts(ctx context.Context, category string) ([]kupi.Discount, error) {
	if category == "" {
		category = s.defaultCategory
	}

	discounts, err := s.client.DiscountsByCategory(ctx, category)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "category", category), "discount fetch failed, returning empty")
		return []kupi.Discount{}, nil
	}
	return discounts, nil
}

// GetDiscountsByShop lists offers for one shop.
func (s *service) GetDiscountsByShop(ctx context.Context, shop string) ([]kupi.Discount, error) {
	discounts, err := s.client.DiscountsByShop(ctx, shop)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "shop", shop), "shop discount fetch failed, returning empty")
		return []kupi.Discount{}, nil
	}
	return discounts, nil
}

// SearchProduct lists offers matching the product name.
func (s *service) SearchProduct(ctx context.Context, name string) ([]kupi.Discount, error) {
	discounts, err := s.client.SearchDiscounts(ctx, name)
	if err != nil {
		s.logger.Warn(s.logger.WithField(ctx, "query", name), "discount search failed, returning empty")
		return []kupi.Discount{}, nil
	}
	return discounts, nil
}

// GetBestDeals returns the top offers in the default category, sorted by
// discount percentage descending.
func (s *service) GetBestDeals(ctx context.Context, limit int) ([]kupi.Discount, error) {
	if limit <= 0 {
		limit = 10
	}

	discounts, err := s.GetDiscounts(ctx, "")
	if err != nil {
		return []kupi.Discount{}, nil
	}

	sort.SliceStable(discounts, func(i, j int) bool {
		return discounts[i].DiscountPercent > discounts[j].DiscountPercent
	})
	if len(discounts) > limit {
		discounts = discounts[:limit]
	}
	return discounts, nil
}
