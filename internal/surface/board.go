package surface

import (
	"slices"
	"sync"
)

// View is a point-in-time copy of every region
type View struct {
	Categories     []CategoryButton
	CategoryStatus string
	GridTitle      string
	GridLoading    bool
	Cards          []Card
	ModalOpen      bool
	Modal          DetailModal
	Cart           CartView
}

// Board keeps the current content of every region in memory
type Board struct {
	mu   sync.RWMutex
	view View
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) ShowCategories(buttons []CategoryButton) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Categories = slices.Clone(buttons)
}

func (b *Board) SetCategoryStatus(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.CategoryStatus = status
}

func (b *Board) ShowCards(cards []Card) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Cards = slices.Clone(cards)
}

func (b *Board) SetGridTitle(title string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.GridTitle = title
}

func (b *Board) SetGridLoading(loading bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.GridLoading = loading
}

func (b *Board) OpenModal(modal DetailModal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Modal = modal
	b.view.ModalOpen = true
}

func (b *Board) CloseModal() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.ModalOpen = false
}

func (b *Board) ShowCart(view CartView) {
	b.mu.Lock()
	defer b.mu.Unlock()
	view.Rows = slices.Clone(view.Rows)
	b.view.Cart = view
}

// Snapshot returns a copy of every region
func (b *Board) Snapshot() View {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v := b.view
	v.Categories = slices.Clone(b.view.Categories)
	v.Cards = slices.Clone(b.view.Cards)
	v.Cart.Rows = slices.Clone(b.view.Cart.Rows)
	return v
}
