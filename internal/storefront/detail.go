package storefront

import (
	"errors"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/models"
	"github.com/greenleaf-co/plantshop/internal/surface"
)

// ErrDetailClosed is returned when acting on the detail view while it is hidden
var ErrDetailClosed = errors.New("detail view is not open")

// Detail is the single modal presentation of one plant
type Detail struct {
	out   surface.ModalRegion
	cart  *cart.Store
	plant models.Plant
	open  bool
}

func NewDetail(out surface.ModalRegion, store *cart.Store) *Detail {
	return &Detail{out: out, cart: store}
}

// Show opens the modal for plant, replacing whatever it showed before
func (d *Detail) Show(plant models.Plant) {
	d.plant = plant
	d.open = true
	d.out.OpenModal(surface.DetailModal{
		Name:        plant.Name,
		Image:       plant.Image,
		Description: plant.Description,
		Category:    plant.Category,
		Price:       format.Money(float64(plant.Price)),
	})
}

func (d *Detail) Hide() {
	d.open = false
	d.out.CloseModal()
}

// Open reports whether the modal is shown
func (d *Detail) Open() bool {
	return d.open
}

// AddToCart adds the shown plant through the cart's confirmation path
func (d *Detail) AddToCart() error {
	if !d.open {
		return ErrDetailClosed
	}
	d.cart.Add(d.plant)
	return nil
}
