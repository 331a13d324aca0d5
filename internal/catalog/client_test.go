package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/greenleaf-co/plantshop/internal/models"
)

func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 5*time.Second)
}

func TestFetchCategoriesNormalizesVariants(t *testing.T) {
	categoriesKeyed := `{"status": true, "categories": [
		{"id": 1, "category_name": "Fruit Tree"},
		{"category_id": "2", "name": "Flowering Tree"},
		{"id": 3, "category": "Shade Tree"},
		{"id": 4}
	]}`
	dataKeyed := `{"status": true, "data": [
		{"id": 1, "category_name": "Fruit Tree"},
		{"category_id": "2", "name": "Flowering Tree"},
		{"id": 3, "category": "Shade Tree"},
		{"id": 4, "name": ""}
	]}`

	expected := []models.Category{
		{ID: "1", Name: "Fruit Tree"},
		{ID: "2", Name: "Flowering Tree"},
		{ID: "3", Name: "Shade Tree"},
		{ID: "4", Name: models.UnnamedCategory},
	}

	for name, body := range map[string]string{"categories": categoriesKeyed, "data": dataKeyed} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, map[string]string{"/categories": body})
			got, err := client.FetchCategories(context.Background())
			if err != nil {
				t.Fatalf("FetchCategories: %v", err)
			}
			if diff := cmp.Diff(expected, got); diff != "" {
				t.Errorf("categories mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchCategoriesPrefersCategoryDisplayKey(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/categories": `{"categories": [{"id": 1, "category": "Bamboo", "name": "ignored", "category_name": "ignored"}]}`,
	})

	got, err := client.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("FetchCategories: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Bamboo" {
		t.Errorf("Expected Bamboo, got %+v", got)
	}
}

func TestFetchPlants(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/plants":     `{"plants": [{"id": 1, "name": "Mango Tree", "image": "https://img/mango.png", "description": "Sweet fruit", "category": "Fruit Tree", "price": 500}]}`,
		"/category/2": `{"data": [{"id": 7, "name": "Gulmohar", "category": "Flowering Tree", "price": "320.50"}]}`,
		"/category/9": `{"plants": []}`,
	})

	tests := []struct {
		name     string
		filter   Filter
		expected []models.Plant
	}{
		{
			name:   "all plants",
			filter: Filter{},
			expected: []models.Plant{
				{ID: "1", Name: "Mango Tree", Image: "https://img/mango.png", Description: "Sweet fruit", Category: "Fruit Tree", Price: 500},
			},
		},
		{
			name:   "category scoped under data key with string price",
			filter: Filter{CategoryID: "2"},
			expected: []models.Plant{
				{ID: "7", Name: "Gulmohar", Category: "Flowering Tree", Price: 320.5},
			},
		},
		{
			name:     "empty category is a valid result",
			filter:   Filter{CategoryID: "9"},
			expected: []models.Plant{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := client.FetchPlants(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("FetchPlants: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("plants mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFetchMissingListKeyIsEmpty(t *testing.T) {
	client := newTestClient(t, map[string]string{"/plants": `{"status": true}`})

	got, err := client.FetchPlants(context.Background(), Filter{})
	if err != nil {
		t.Fatalf("FetchPlants: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no plants, got %d", len(got))
	}
}

func TestFetchFailuresAreCatalogUnavailable(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
		},
		{
			name: "list is not an array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"categories": "none", "plants": 3}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			client := NewClient(srv.URL, time.Second)

			if _, err := client.FetchCategories(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
				t.Errorf("FetchCategories: expected ErrCatalogUnavailable, got %v", err)
			}
			if _, err := client.FetchPlants(context.Background(), Filter{}); !errors.Is(err, ErrCatalogUnavailable) {
				t.Errorf("FetchPlants: expected ErrCatalogUnavailable, got %v", err)
			}
		})
	}
}

func TestFetchNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	if _, err := client.FetchCategories(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Errorf("Expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestFetchPlantsEscapesCategoryID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"plants": []}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	if _, err := client.FetchPlants(context.Background(), Filter{CategoryID: "a/b"}); err != nil {
		t.Fatalf("FetchPlants: %v", err)
	}
	if gotPath != "/category/a%2Fb" {
		t.Errorf("Expected /category/a%%2Fb, got %s", gotPath)
	}
}
