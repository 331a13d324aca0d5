// Package surface defines the named regions the storefront writes into and
// Board, the in-memory implementation rendered by the web and terminal
// front ends.
package surface

// CategoryButton is one entry of the category list
type CategoryButton struct {
	ID     string
	Name   string
	Active bool
}

// Card is the summary view of one plant in the grid
type Card struct {
	Index    int
	Name     string
	Image    string
	Summary  string
	Category string
	Price    string
}

// DetailModal is the expanded view of one plant
type DetailModal struct {
	Name        string
	Image       string
	Description string
	Category    string
	Price       string
}

// CartRow is one line of the cart list, bound to its current position
type CartRow struct {
	Index int
	Name  string
	Price string
}

// CartView is the full cart list plus its total
type CartView struct {
	Rows        []CartRow
	Placeholder string
	Total       string
}

// CategoryRegion is the category selector and its loading indicator
type CategoryRegion interface {
	ShowCategories(buttons []CategoryButton)
	// SetCategoryStatus replaces the loading indicator text; "" hides it
	SetCategoryStatus(status string)
}

// GridRegion is the plant grid with its title and loading indicator
type GridRegion interface {
	ShowCards(cards []Card)
	SetGridTitle(title string)
	SetGridLoading(loading bool)
}

// ModalRegion is the single detail modal
type ModalRegion interface {
	OpenModal(modal DetailModal)
	CloseModal()
}

// CartRegion is the cart list with its total
type CartRegion interface {
	ShowCart(view CartView)
}

// Surface is every region of the storefront page
type Surface interface {
	CategoryRegion
	GridRegion
	ModalRegion
	CartRegion
}
