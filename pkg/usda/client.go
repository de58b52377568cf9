package usda

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
const ProviderName = "USDA FoodData Central"

const (
	userAgent   = "Foodler Backend - Food Management Service - v0.1.0"
	maxPageSize = 200
)

// FoodData Central nutrient names. Values arrive per 100g; minerals and a
// few others are reported in mg and converted to grams on mapping.
const (
	nutrientEnergy       = "Energy"
	nutrientProtein      = "Protein"
	nutrientCarbs        = "Carbohydrate, by difference"
	nutrientFat          = "Total lipid (fat)"
	nutrientFiber        = "Fiber, total dietary"
	nutrientSugars       = "Sugars, total including NLEA"
	nutrientSugarsLegacy = "Sugars, Total"
	nutrientSodium       = "Sodium, Na"
	nutrientCholesterol  = "Cholesterol"
	nutrientSaturatedFat = "Fatty acids, total saturated"
	nutrientMonoFat      = "Fatty acids, total monounsaturated"
	nutrientPolyFat      = "Fatty acids, total polyunsaturated"
	nutrientTransFat     = "Fatty acids, total trans"
	nutrientVitaminA     = "Vitamin A, RAE"
	nutrientVitaminC     = "Vitamin C, total ascorbic acid"
	nutrientVitaminD     = "Vitamin D (D2 + D3)"
	nutrientVitaminE     = "Vitamin E (alpha-tocopherol)"
	nutrientCalcium      = "Calcium, Ca"
	nutrientIron         = "Iron, Fe"
	nutrientMagnesium    = "Magnesium, Mg"
	nutrientPotassium    = "Potassium, K"
	nutrientZinc         = "Zinc, Zn"
)

var (
	errAPIKeyRequired  = errors.New("usda API key is required")
	errBaseURLRequired = errors.New("usda base URL is required")
	errLoggerRequired  = errors.New("usda logger is required")
)

// Client talks to the USDA FoodData Central API. It covers name lookups and
// search only; FoodData Central has no barcode surface.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logger.Logger
}

// NewClient validates the configuration and builds the client. Callers are
// expected to skip construction entirely when no API key is configured.
func NewClient(cfg config.NutritionConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	apiKey := strings.TrimSpace(cfg.USDAAPIKey)
	if apiKey == "" {
		return nil, errAPIKeyRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.USDABaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
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
	foods, err := c.searchFoods(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, nil
	}

	food := foods[0]
	byName := map[string]float64{}
	for _, n := range food.Nutrients {
		byName[n.Name] = n.Value
	}

	sugars, ok := byName[nutrientSugars]
	if !ok {
		sugars = byName[nutrientSugarsLegacy]
	}

	record := types.NutritionRecord{
		Name:          food.Description,
		Brand:         food.BrandOwner,
		Calories:      byName[nutrientEnergy],
		Protein:       byName[nutrientProtein],
		Carbs:         byName[nutrientCarbs],
		Fats:          byName[nutrientFat],
		Fiber:         byName[nutrientFiber],
		Sugars:        sugars,
		SaturatedFats: byName[nutrientSaturatedFat],
		// FoodData Central reports sodium in mg; salt = sodium * 2.5.
		Salt:   byName[nutrientSodium] / 1000 * 2.5,
		Source: ProviderName,
	}

	ctx = c.logger.WithProvider(ctx, ProviderName)
	c.logger.Debug(c.logger.WithField(ctx, "food", record.Name), "nutrition lookup hit")
	return &record, nil
}

// LookupDetailed fetches the full record for the best match via the food
// detail endpoint.
func (c *Client) LookupDetailed(ctx context.Context, name string) (*types.DetailedNutritionRecord, error) {
	foods, err := c.searchFoods(ctx, name, 1)
	if err != nil {
		return nil, err
	}
	if len(foods) == 0 {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/food/%d?api_key=%s", c.baseURL, foods[0].FdcID, url.QueryEscape(c.apiKey))
	var detail foodDetail
	if err := c.getJSON(ctx, endpoint, &detail); err != nil {
		return nil, err
	}

	byName := map[string]float64{}
	for _, n := range detail.Nutrients {
		byName[n.Nutrient.Name] = n.Amount
	}
	mg := func(name string) float64 { return byName[name] / 1000 }

	record := types.DetailedNutritionRecord{
		NutritionRecord: types.NutritionRecord{
			Name:          detail.Description,
			Brand:         detail.BrandOwner,
			Calories:      byName[nutrientEnergy],
			Protein:       byName[nutrientProtein],
			Carbs:         byName[nutrientCarbs],
			Fats:          byName[nutrientFat],
			Fiber:         byName[nutrientFiber],
			Sugars:        byName[nutrientSugars],
			SaturatedFats: byName[nutrientSaturatedFat],
			Salt:          mg(nutrientSodium) * 2.5,
			Source:        ProviderName,
		},

		Sodium:              mg(nutrientSodium),
		MonounsaturatedFats: byName[nutrientMonoFat],
		PolyunsaturatedFats: byName[nutrientPolyFat],
		TransFats:           byName[nutrientTransFat],
		Cholesterol:         mg(nutrientCholesterol),

		VitaminA: byName[nutrientVitaminA],
		VitaminC: byName[nutrientVitaminC],
		VitaminD: byName[nutrientVitaminD],
		VitaminE: byName[nutrientVitaminE],

		Calcium:   mg(nutrientCalcium),
		Iron:      mg(nutrientIron),
		Magnesium: mg(nutrientMagnesium),
		Potassium: mg(nutrientPotassium),
		Zinc:      mg(nutrientZinc),

		IngredientsText: detail.Ingredients,
	}
	return &record, nil
}

// Search returns up to limit lightweight hits for the query.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]types.BasicFoodRecord, error) {
	if limit <= 0 {
		return nil, nil
	}
	foods, err := c.searchFoods(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	records := make([]types.BasicFoodRecord, 0, len(foods))
	for _, f := range foods {
		records = append(records, types.BasicFoodRecord{
			Name:   f.Description,
			Brand:  f.BrandOwner,
			Source: ProviderName,
		})
	}
	return records, nil
}

func (c *Client) searchFoods(ctx context.Context, query string, pageSize int) ([]searchFood, error) {
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageNumber", "1")
	params.Set("pageSize", strconv.Itoa(pageSize))

	endpoint := fmt.Sprintf("%s/foods/search?%s", c.baseURL, params.Encode())
	var decoded searchResponse
	if err := c.getJSON(ctx, endpoint, &decoded); err != nil {
		return nil, err
	}
	return decoded.Foods, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building usda request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling usda")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("usda returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding usda response")
	}
	return nil
}
