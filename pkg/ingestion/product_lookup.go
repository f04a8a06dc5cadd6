package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultOpenFoodFactsURL = "https://world.openfoodfacts.org/api/v2/product"

type (
	// ProductInfo is what a barcode resolves to in the Open Food Facts
	// database.
	ProductInfo struct {
		Barcode   string `json:"barcode"`
		Name      string `json:"name"`
		Brand     string `json:"brand,omitempty"`
		Category  string `json:"category,omitempty"`
		ImageURL  string `json:"image_url,omitempty"`
		Quantity  string `json:"quantity,omitempty"` // label quantity, e.g. "1L"
		Packaging string `json:"packaging,omitempty"`
	}

	// ProductLookup resolves a barcode to product data. (nil, nil) means
	// the barcode is simply not in the database.
	ProductLookup interface {
		LookupProduct(ctx context.Context, barcode string) (*ProductInfo, error)
	}

	openFoodFactsClient struct {
		baseURL    string
		httpClient *http.Client
	}
)

// NewOpenFoodFactsClient builds a lookup client. Open Food Facts needs no
// API key, only a polite User-Agent.
func NewOpenFoodFactsClient(baseURL string) ProductLookup {
	if baseURL == "" {
		baseURL = defaultOpenFoodFactsURL
	}
	return &openFoodFactsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type offProduct struct {
	ProductName            string   `json:"product_name"`
	GenericName            string   `json:"generic_name"`
	AbbreviatedProductName string   `json:"abbreviated_product_name"`
	Brands                 string   `json:"brands"`
	CategoriesTags         []string `json:"categories_tags"`
	Categories             string   `json:"categories"`
	ImageURL               string   `json:"image_url"`
	Quantity               string   `json:"quantity"`
	Packaging              string   `json:"packaging"`
}

// LookupProduct swallows transport errors into (nil, nil): barcode lookup
// is best-effort and a flaky upstream must not fail the ingestion flow.
func (c *openFoodFactsClient) LookupProduct(ctx context.Context, barcode string) (*ProductInfo, error) {
	url := fmt.Sprintf("%s/%s.json", c.baseURL, barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "SnapShelf/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Status  int        `json:"status"`
		Product offProduct `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil
	}

	if payload.Status != 1 {
		return nil, nil
	}

	return &ProductInfo{
		Barcode:   barcode,
		Name:      productName(payload.Product),
		Brand:     payload.Product.Brands,
		Category:  productCategory(payload.Product),
		ImageURL:  payload.Product.ImageURL,
		Quantity:  payload.Product.Quantity,
		Packaging: payload.Product.Packaging,
	}, nil
}

// productName tries the name fields in order of preference.
func productName(product offProduct) string {
	for _, name := range []string{product.ProductName, product.GenericName, product.AbbreviatedProductName} {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	return "Unknown Product"
}

// productCategory extracts the most specific category tag and normalizes
// it into the category system the expiry predictor understands.
func productCategory(product offProduct) string {
	if len(product.CategoriesTags) > 0 {
		category := product.CategoriesTags[0]
		category = strings.TrimPrefix(category, "en:")
		category = strings.ReplaceAll(category, "-", " ")
		return NormalizeCategory(category)
	}

	if product.Categories != "" {
		category := strings.TrimSpace(strings.Split(product.Categories, ",")[0])
		return NormalizeCategory(category)
	}

	return ""
}

// categoryKeywords maps keyword hits in Open Food Facts categories to the
// simpler category system used by expiry prediction. Order matters: first
// match wins.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"dairy", []string{"milk", "yogurt", "cheese", "dairy", "butter"}},
	{"meat", []string{"meat", "beef", "pork", "chicken", "poultry"}},
	{"fish", []string{"fish", "seafood", "salmon", "tuna"}},
	{"fruits", []string{"fruit", "apple", "banana", "orange"}},
	{"vegetables", []string{"vegetable", "carrot", "lettuce", "tomato"}},
	{"bakery", []string{"bread", "bakery", "pastry"}},
	{"eggs", []string{"egg"}},
	{"frozen", []string{"frozen"}},
	{"canned", []string{"canned", "preserved"}},
	{"condiments", []string{"sauce", "condiment", "ketchup", "mustard"}},
}

// NormalizeCategory collapses a detailed upstream category into one of the
// expiry predictor's categories, passing through input with no match.
func NormalizeCategory(category string) string {
	lowered := strings.ToLower(category)
	for _, mapping := range categoryKeywords {
		for _, keyword := range mapping.keywords {
			if strings.Contains(lowered, keyword) {
				return mapping.category
			}
		}
	}
	return category
}
