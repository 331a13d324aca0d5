package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/greenleaf-co/plantshop/internal/models"
)

// DefaultBaseURL is the public plant catalog API
const DefaultBaseURL = "https://openapi.programming-hero.com/api"

// ErrCatalogUnavailable is returned for any network, status or decoding failure
var ErrCatalogUnavailable = errors.New("catalog unavailable")

// Client represents a plant catalog API client
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// Filter scopes a plant fetch. The zero value fetches all plants.
type Filter struct {
	CategoryID string
}

// All reports whether the filter is unscoped
func (f Filter) All() bool {
	return f.CategoryID == ""
}

// NewClient creates a new catalog client
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchCategories fetches every category from the catalog
func (c *Client) FetchCategories(ctx context.Context) ([]models.Category, error) {
	body, err := c.get(ctx, "/categories")
	if err != nil {
		return nil, err
	}

	categories, err := decodeCategories(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode categories: %w", ErrCatalogUnavailable, err)
	}

	slog.Debug("Fetched categories", "count", len(categories))
	return categories, nil
}

// FetchPlants fetches all plants, or only those of filter.CategoryID
func (c *Client) FetchPlants(ctx context.Context, filter Filter) ([]models.Plant, error) {
	path := "/plants"
	if !filter.All() {
		path = "/category/" + url.PathEscape(filter.CategoryID)
	}

	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	plants, err := decodePlants(body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode plants: %w", ErrCatalogUnavailable, err)
	}

	slog.Debug("Fetched plants", "category", filter.CategoryID, "count", len(plants))
	return plants, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrCatalogUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %w", ErrCatalogUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: catalog API returned status %d: %s", ErrCatalogUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", ErrCatalogUnavailable, err)
	}
	return body, nil
}
