package storefront

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/greenleaf-co/plantshop/internal/catalog"
	"github.com/greenleaf-co/plantshop/internal/models"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

// Region messages
const (
	StatusLoadingCategories = "Loading categories..."
	StatusCategoriesFailed  = "Failed to load categories"
	TitleLoadingAll         = "Loading all plants..."
	TitleLoadingCategory    = "Loading Trees..."
	TitleReady              = "Choose Your Trees"
	TitleCategoryFailed     = "Failed to load trees"
	TitleAllFailed          = "Failed to load plants"
)

// Catalog is the read side of the remote plant catalog
type Catalog interface {
	FetchCategories(ctx context.Context) ([]models.Category, error)
	FetchPlants(ctx context.Context, filter catalog.Filter) ([]models.Plant, error)
}

// Loader fetches catalog data and publishes it to the category and grid
// regions. Fetches run without holding mu; results are applied under it.
type Loader struct {
	catalog    Catalog
	categories surface.CategoryRegion
	gridOut    surface.GridRegion
	grid       *Grid
	mu         sync.Locker

	buttons []surface.CategoryButton
	// selected category id, "" while all plants are shown
	selected string
	// generation of the newest grid request; older results are dropped
	generation uint64
}

func NewLoader(c Catalog, categories surface.CategoryRegion, gridOut surface.GridRegion, grid *Grid, mu sync.Locker) *Loader {
	return &Loader{
		catalog:    c,
		categories: categories,
		gridOut:    gridOut,
		grid:       grid,
		mu:         mu,
	}
}

// Init loads categories and all plants concurrently. Each load only touches
// its own region, so one failing never affects the other.
func (l *Loader) Init(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		l.LoadCategories(ctx)
		return nil
	})
	g.Go(func() error {
		l.LoadAllPlants(ctx)
		return nil
	})
	_ = g.Wait()
}

// LoadCategories fills the category selector
func (l *Loader) LoadCategories(ctx context.Context) {
	l.mu.Lock()
	l.categories.SetCategoryStatus(StatusLoadingCategories)
	l.mu.Unlock()

	categories, err := l.catalog.FetchCategories(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	if err != nil {
		slog.Error("Failed to load categories", "err", err)
		l.categories.SetCategoryStatus(StatusCategoriesFailed)
		return
	}

	l.buttons = make([]surface.CategoryButton, 0, len(categories))
	for _, c := range categories {
		l.buttons = append(l.buttons, surface.CategoryButton{
			ID:     c.ID,
			Name:   c.Name,
			Active: l.selected != "" && c.ID == l.selected,
		})
	}
	l.categories.SetCategoryStatus("")
	l.categories.ShowCategories(l.buttons)
}

// LoadAllPlants replaces the grid with every plant in the catalog
func (l *Loader) LoadAllPlants(ctx context.Context) {
	l.mu.Lock()
	l.highlight("")
	l.mu.Unlock()

	l.loadGrid(ctx, catalog.Filter{}, TitleLoadingAll, TitleAllFailed)
}

// SelectCategory highlights the category and replaces the grid with its plants
func (l *Loader) SelectCategory(ctx context.Context, categoryID string) {
	l.mu.Lock()
	l.highlight(categoryID)
	l.mu.Unlock()

	l.loadGrid(ctx, catalog.Filter{CategoryID: categoryID}, TitleLoadingCategory, TitleCategoryFailed)
}

func (l *Loader) loadGrid(ctx context.Context, filter catalog.Filter, loadingTitle, failedTitle string) {
	l.mu.Lock()
	l.generation++
	mine := l.generation
	l.grid.Clear()
	l.gridOut.SetGridLoading(true)
	l.gridOut.SetGridTitle(loadingTitle)
	l.mu.Unlock()

	plants, err := l.catalog.FetchPlants(ctx, filter)

	l.mu.Lock()
	defer l.mu.Unlock()
	if mine != l.generation {
		slog.Debug("Dropping superseded plant load", "category", filter.CategoryID, "generation", mine, "current", l.generation)
		return
	}

	l.gridOut.SetGridLoading(false)
	if err != nil {
		slog.Error(failedTitle, "category", filter.CategoryID, "err", err)
		l.gridOut.SetGridTitle(failedTitle)
		return
	}

	l.gridOut.SetGridTitle(TitleReady)
	l.grid.Render(plants)
	slog.Info("Loaded plants", "category", filter.CategoryID, "count", len(plants))
}

// highlight marks categoryID active and clears every other button. Callers hold mu.
func (l *Loader) highlight(categoryID string) {
	l.selected = categoryID
	if len(l.buttons) == 0 {
		return
	}
	for i := range l.buttons {
		l.buttons[i].Active = categoryID != "" && l.buttons[i].ID == categoryID
	}
	l.categories.ShowCategories(l.buttons)
}

// Categories returns the category buttons currently shown
func (l *Loader) Categories() []surface.CategoryButton {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]surface.CategoryButton, len(l.buttons))
	copy(out, l.buttons)
	return out
}
