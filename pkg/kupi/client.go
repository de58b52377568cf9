package kupi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/prismqdev/foodler-backend/pkg/config"
	pkgerrors "github.com/prismqdev/foodler-backend/pkg/errors"
	"github.com/prismqdev/foodler-backend/pkg/logger"
)

const userAgent = "Foodler Backend - Food Management Service - v0.1.0"

var (
	errBaseURLRequired = errors.New("kupi base URL is required")
	errLoggerRequired  = errors.New("kupi logger is required")
)

// Discount is a single store offer. Prices are kept as decimals so values
// like "49.90" survive untouched.
type Discount struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountPercent float64         `json:"discount_percent"`
	Store           string          `json:"store"`
	ValidUntil      string          `json:"valid_until"`
}

// discountPayload matches the upstream JSON, where prices and the discount
// come back as strings ("49.90", "-30 %").
type discountPayload struct {
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price"`
	Discount      string `json:"discount"`
	Store         string `json:"store"`
	ValidUntil    string `json:"valid_until"`
}

type discountsResponse struct {
	Discounts []discountPayload `json:"discounts"`
}

// Client talks to the kupi.cz discount portal API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient validates the configuration and builds the client.
func NewClient(cfg config.DiscountsConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.KupiBaseURL), "/")
	if baseURL == "" {
		return nil, errBaseURLRequired
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    baseURL,
		logger:     logg,
	}, nil
}

// DiscountsByCategory lists current offers in the given category.
func (c *Client) DiscountsByCategory(ctx context.Context, category string) ([]Discount, error) {
	params := url.Values{}
	params.Set("category", category)
	return c.fetch(ctx, fmt.Sprintf("%s/discounts?%s", c.baseURL, params.Encode()))
}

// DiscountsByShop lists current offers for one shop (tesco, lidl, ...).
func (c *Client) DiscountsByShop(ctx context.Context, shop string) ([]Discount, error) {
	shop = strings.ToLower(strings.TrimSpace(shop))
	return c.fetch(ctx, fmt.Sprintf("%s/shops/%s", c.baseURL, url.PathEscape(shop)))
}

// SearchDiscounts lists offers matching a product name.
func (c *Client) SearchDiscounts(ctx context.Context, query string) ([]Discount, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode()))
}

func (c *Client) fetch(ctx context.Context, endpoint string) ([]Discount, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "building kupi request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "calling kupi")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("kupi returned status %d", resp.StatusCode))
	}

	var decoded discountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding kupi response")
	}

	discounts := make([]Discount, 0, len(decoded.Discounts))
	for _, d := range decoded.Discounts {
		discounts = append(discounts, Discount{
			Name:            d.Name,
			Price:           parsePrice(d.Price),
			OriginalPrice:   parsePrice(d.OriginalPrice),
			DiscountPercent: ExtractPercent(d.Discount),
			Store:           d.Store,
			ValidUntil:      d.ValidUntil,
		})
	}
	return discounts, nil
}

func parsePrice(raw string) decimal.Decimal {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	cleaned = strings.TrimSuffix(cleaned, "Kč")
	cleaned = strings.TrimSpace(cleaned)
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ExtractPercent pulls a number out of discount strings like "-30 %" or
// "30%". The leading minus marks a markdown, not a negative percentage, so
// the magnitude is returned. Unparseable input yields 0.
func ExtractPercent(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' || r == '.' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
