package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client consumes the external Catalog Service REST surface. It always works
// on the full entity lists, there is no pagination contract.
type Client struct {
	BaseUrl string
	Http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		BaseUrl: baseUrl,
		Http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseUrl+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.Http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog service returned %d for %s", res.StatusCode, path)
	}
	return io.ReadAll(res.Body)
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	data, err := c.fetch(ctx, "/api/products")
	if err != nil {
		return nil, err
	}
	return DecodeProducts(data)
}

func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	data, err := c.fetch(ctx, "/api/categories")
	if err != nil {
		return nil, err
	}
	return DecodeCategories(data)
}

func (c *Client) ListTypes(ctx context.Context) ([]Type, error) {
	data, err := c.fetch(ctx, "/api/types")
	if err != nil {
		return nil, err
	}
	return DecodeTypes(data)
}

func (c *Client) ListBrands(ctx context.Context) ([]Brand, error) {
	data, err := c.fetch(ctx, "/api/brands")
	if err != nil {
		return nil, err
	}
	return DecodeBrands(data)
}

func (c *Client) ListCountries(ctx context.Context) ([]Country, error) {
	data, err := c.fetch(ctx, "/api/countries")
	if err != nil {
		return nil, err
	}
	return DecodeCountries(data)
}

// LoadInto fetches the full catalog and swaps it into the snapshot. Partial
// failures leave the snapshot untouched.
func (c *Client) LoadInto(ctx context.Context, snapshot *Snapshot) error {
	products, err := c.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("loading products: %w", err)
	}
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("loading categories: %w", err)
	}
	types, err := c.ListTypes(ctx)
	if err != nil {
		return fmt.Errorf("loading types: %w", err)
	}
	brands, err := c.ListBrands(ctx)
	if err != nil {
		return fmt.Errorf("loading brands: %w", err)
	}
	countries, err := c.ListCountries(ctx)
	if err != nil {
		return fmt.Errorf("loading countries: %w", err)
	}
	snapshot.Replace(products, categories, types, brands, countries)
	return nil
}
