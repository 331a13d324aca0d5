package storefront

import (
	"errors"
	"fmt"
	"slices"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/models"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

// ErrNoSuchCard is returned when activating a card the grid does not show
var ErrNoSuchCard = errors.New("no such card")

// Affordance is one interactive element of a card
type Affordance int

const (
	AffordanceName Affordance = iota
	AffordanceImage
	AffordanceAddToCart
)

func (a Affordance) String() string {
	switch a {
	case AffordanceName:
		return "name"
	case AffordanceImage:
		return "image"
	case AffordanceAddToCart:
		return "add-to-cart"
	default:
		return fmt.Sprintf("affordance(%d)", int(a))
	}
}

// Grid renders plants as summary cards and dispatches card actions
type Grid struct {
	plants []models.Plant
	out    surface.GridRegion
	detail *Detail
	cart   *cart.Store
}

func NewGrid(out surface.GridRegion, detail *Detail, store *cart.Store) *Grid {
	return &Grid{
		out:    out,
		detail: detail,
		cart:   store,
	}
}

// Render replaces every card with one card per plant, in order
func (g *Grid) Render(plants []models.Plant) {
	g.plants = slices.Clone(plants)

	cards := make([]surface.Card, 0, len(g.plants))
	for i, p := range g.plants {
		cards = append(cards, surface.Card{
			Index:    i,
			Name:     p.Name,
			Image:    p.Image,
			Summary:  format.Summary(p.Description),
			Category: p.Category,
			Price:    format.Money(float64(p.Price)),
		})
	}
	g.out.ShowCards(cards)
}

// Clear empties the grid
func (g *Grid) Clear() {
	g.Render(nil)
}

// Plant returns a copy of the plant behind card index
func (g *Grid) Plant(index int) (models.Plant, bool) {
	if index < 0 || index >= len(g.plants) {
		return models.Plant{}, false
	}
	return g.plants[index], true
}

// Activate runs the action bound to one affordance of card index
func (g *Grid) Activate(index int, a Affordance) error {
	plant, ok := g.Plant(index)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchCard, index)
	}

	switch a {
	case AffordanceName, AffordanceImage:
		g.detail.Show(plant)
	case AffordanceAddToCart:
		g.cart.Add(plant)
	default:
		return fmt.Errorf("unsupported affordance: %s", a)
	}
	return nil
}
