package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/prismqdev/foodler-backend/pkg/config"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
	"github.com/prismqdev/foodler-backend/pkg/types"
)

// ProviderName identifies this source in records and log lines.
const ProviderName = "Open Food Facts"

const (
	userAgent    = "Foodler Backend - Food Management Service - v0.1.0"
	maxPageSize  = 100
	searchFields = "product_name,nutriments,brands,quantity,image_url,categories,ingredients_text,serving_size,nutriscore_grade"
)

var (
	errBaseURLRequired = errors.New("openfoodfacts base URL is required")
	errLoggerRequired  = errors.New("openfoodfacts logger is required")
)

// Client talks to the Open Food Facts public API. The zero value is not
// usable; construct it with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	country    string
	logger     *logger.Logger
}

// NewClient validates the configuration and builds the client. The country
// code narrows search results to a regional catalogue when set.
func NewClient(cfg config.NutritionConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.OpenFoodFactsBaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    baseURL,
		country:    strings.TrimSpace(cfg.CountryCode),
		logger:     logg,
	}, nil
}

// Name reports the provider name used for routing and metrics labels.
func (c *Client) Name() string {
	return ProviderName
}

// Lookup returns per-100g nutrition for the best search match, or nil when
// nothing matched.
func (c *Client) Lookup(ctx context.Context, name string) (*types.NutritionRecord, error) {
	products, err := c.searchProducts(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	record := products[0].toRecord()
	ctx = c.logger.WithProvider(ctx, ProviderName)
	c.logger.Debug(c.logger.WithField(ctx, "product", record.Name), "nutrition lookup hit")
	return &record, nil
}

// LookupDetailed returns the full nutrient breakdown for the best match.
func (c *Client) LookupDetailed(ctx context.Context, name string) (*types.DetailedNutritionRecord, error) {
	products, err := c.searchProducts(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, nil
	}

	record := products[0].toDetailedRecord()
	return &record, nil
}

// Search returns up to limit lightweight hits for the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.BasicFoodRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	products, err := c.searchProducts(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	records := make([]types.BasicFoodRecord, 0, len(products))
	for _, p := range products {
		records = append(records, types.BasicFoodRecord{
			Name:   p.ProductName,
			Brand:  p.Brands,
			Source: ProviderName,
		})
	}
	return records, nil
}

// LookupBarcode resolves a product by its EAN/UPC barcode.
func (c *Client) LookupBarcode(ctx context.Context, code string) (*types.NutritionRecord, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/api/v2/product/%s", c.baseURL, url.PathEscape(code))
	var decoded productResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}
	if decoded.Status != 1 || decoded.Product == nil {
		return nil, nil
	}

	record := decoded.Product.toRecord()
	return &record, nil
}

func (c *Client) searchProducts(ctx context.Context, query string, pageSize int) ([]product, error) {
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("json", "1")
	params.Set("page", "1")
	params.Set("page_size", strconv.Itoa(pageSize))
	params.Set("fields", searchFields)
	if c.country != "" {
		params.Set("tagtype_0", "countries")
		params.Set("tag_contains_0", "contains")
		params.Set("tag_0", c.country)
	}

	endpoint := fmt.Sprintf("%s/cgi/search.pl?%s", c.baseURL, params.Encode())
	var decoded searchResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}
	return decoded.Products, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building openfoodfacts request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling openfoodfacts")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("openfoodfacts returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding openfoodfacts response")
	}
	return nil
}

func (p product) toRecord() types.NutritionRecord {
	n := p.Nutriments
	return types.NutritionRecord{
		Name:          p.ProductName,
		Brand:         p.Brands,
		Quantity:      p.Quantity,
		Calories:      n.EnergyKcal100g,
		Protein:       n.Proteins100g,
		Carbs:         n.Carbohydrates100g,
		Fats:          n.Fat100g,
		Fiber:         n.Fiber100g,
		Sugars:        n.Sugars100g,
		Salt:          n.Salt100g,
		SaturatedFats: n.SaturatedFat100g,
		ImageURL:      p.ImageURL,
		Source:        ProviderName,
	}
}

func (p product) toDetailedRecord() types.DetailedNutritionRecord {
	n := p.Nutriments
	serving := p.ServingSize
	if serving == "" {
		serving = "100g"
	}
	return types.DetailedNutritionRecord{
		NutritionRecord: p.toRecord(),

		Sodium:              n.Sodium100g,
		MonounsaturatedFats: n.MonounsaturatedFat100g,
		PolyunsaturatedFats: n.PolyunsaturatedFat100g,
		TransFats:           n.TransFat100g,
		Cholesterol:         n.Cholesterol100g,

		VitaminA: n.VitaminA100g,
		VitaminC: n.VitaminC100g,
		VitaminD: n.VitaminD100g,
		VitaminE: n.VitaminE100g,

		Calcium:   n.Calcium100g,
		Iron:      n.Iron100g,
		Magnesium: n.Magnesium100g,
		Potassium: n.Potassium100g,
		Zinc:      n.Zinc100g,

		NutriScoreGrade: p.NutriScoreGrade,
		Categories:      p.Categories,
		IngredientsText: p.IngredientsText,
		ServingSize:     serving,
	}
}
