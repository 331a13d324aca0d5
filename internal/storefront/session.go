// Package storefront wires the catalog, card grid, detail modal and cart of
// one visitor together.
package storefront

import (
	"context"
	"sync"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

// Session is the complete storefront state of one visitor
type Session struct {
	mu      sync.Mutex
	started sync.Once

	Board  *surface.Board
	Cart   *cart.Store
	Detail *Detail
	Grid   *Grid
	Loader *Loader
}

// NewSession builds an empty storefront whose cart asks confirm before adding
func NewSession(c Catalog, confirm cart.Confirmer) *Session {
	s := &Session{Board: surface.NewBoard()}
	s.Cart = cart.NewStore(s.Board, confirm)
	s.Detail = NewDetail(s.Board, s.Cart)
	s.Grid = NewGrid(s.Board, s.Detail, s.Cart)
	s.Loader = NewLoader(c, s.Board, s.Board, s.Grid, &s.mu)
	s.Cart.Render()
	return s
}

// Start runs the initial page load the first time it is called. Later
// calls return at once, or wait for the first load to finish.
func (s *Session) Start(ctx context.Context) {
	s.started.Do(func() {
		s.Loader.Init(ctx)
	})
}

// Update runs fn with exclusive access to the grid, detail view and cart.
// fn must not call Loader methods, they lock on their own.
func (s *Session) Update(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// View returns a snapshot of every region
func (s *Session) View() surface.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Board.Snapshot()
}
