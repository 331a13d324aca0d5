package cart

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/models"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

// EmptyPlaceholder is the only row shown for an empty cart
const EmptyPlaceholder = "No items yet."

// ErrIndexOutOfRange is returned by Remove for a position outside the cart
var ErrIndexOutOfRange = errors.New("cart index out of range")

// Store holds the ordered cart lines of one visitor.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	items   []models.CartItem
	confirm Confirmer
	out     surface.CartRegion
}

// NewStore creates an empty cart drawing into out
func NewStore(out surface.CartRegion, confirm Confirmer) *Store {
	if confirm == nil {
		confirm = Always
	}
	return &Store{
		items:   []models.CartItem{},
		confirm: confirm,
		out:     out,
	}
}

// Prompt is the confirmation question asked before adding plant
func Prompt(plant models.Plant) string {
	return fmt.Sprintf("Do you want to add \"%s\" to the cart?", plant.Name)
}

// Add appends a copy of plant once the user confirms. It reports whether the
// cart changed.
func (s *Store) Add(plant models.Plant) bool {
	if !s.confirm.Confirm(Prompt(plant)) {
		slog.Debug("Add to cart declined", "plant", plant.Name)
		return false
	}

	s.items = append(s.items, models.NewCartItem(plant))
	slog.Debug("Added to cart", "plant", plant.Name, "price", float64(plant.Price), "items", len(s.items))
	s.Render()
	return true
}

// Remove drops the line at index, keeping the order of the others
func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return fmt.Errorf("%w: %d (cart has %d items)", ErrIndexOutOfRange, index, len(s.items))
	}

	s.items = slices.Delete(s.items, index, index+1)
	s.Render()
	return nil
}

// Render redraws the whole cart list and total
func (s *Store) Render() {
	if s.out == nil {
		return
	}

	if len(s.items) == 0 {
		s.out.ShowCart(surface.CartView{
			Placeholder: EmptyPlaceholder,
			Total:       format.Money(0),
		})
		return
	}

	rows := make([]surface.CartRow, 0, len(s.items))
	for i, item := range s.items {
		rows = append(rows, surface.CartRow{
			Index: i,
			Name:  item.Name,
			Price: format.Money(item.Price),
		})
	}
	s.out.ShowCart(surface.CartView{
		Rows:  rows,
		Total: format.Money(s.Total()),
	})
}

// Total sums every line price
func (s *Store) Total() float64 {
	total := 0.0
	for _, item := range s.items {
		total += item.Price
	}
	return total
}

func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the cart lines in display order
func (s *Store) Items() []models.CartItem {
	return slices.Clone(s.items)
}
