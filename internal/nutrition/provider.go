package nutrition

import (
	"context"

	"github.com/prismqdev/foodler-backend/pkg/types"
)

// Provider is a remote nutrition source. Implementations return a nil record
// without error when nothing matched.
type Provider interface {
	Name() string
	Lookup(ctx context.Context, name string) (*types.NutritionRecord, error)
	LookupDetailed(ctx context.Context, name string) (*types.DetailedNutritionRecord, error)
	Search(ctx context.Context, query string, limit int) ([]types.BasicFoodRecord, error)
}

// BarcodeProvider is a source that can resolve EAN/UPC barcodes.
type BarcodeProvider interface {
	Provider
	LookupBarcode(ctx context.Context, code string) (*types.NutritionRecord, error)
}
