package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/greenleaf-co/plantshop/internal/cart"
	"github.com/greenleaf-co/plantshop/internal/storefront"
)

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	v := h.visitorFor(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "page", v.View()); err != nil {
		slog.Error("Unable to render storefront", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) HandleAllPlants(w http.ResponseWriter, r *http.Request) {
	v := h.visitorFor(w, r)
	v.Loader.LoadAllPlants(r.Context())
	h.redirectHome(w, r)
}

func (h *Handler) HandleSelectCategory(w http.ResponseWriter, r *http.Request) {
	v := h.visitorFor(w, r)
	v.Loader.SelectCategory(r.Context(), chi.URLParam(r, "id"))
	h.redirectHome(w, r)
}

func (h *Handler) HandleOpenCard(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, storefront.AffordanceName)
}

func (h *Handler) HandleAddCard(w http.ResponseWriter, r *http.Request) {
	h.cardAction(w, r, storefront.AffordanceAddToCart)
}

func (h *Handler) HandleCloseDetail(w http.ResponseWriter, r *http.Request) {
	v := h.visitorFor(w, r)
	_ = v.Update(func() error {
		v.Detail.Hide()
		return nil
	})
	h.redirectHome(w, r)
}

func (h *Handler) HandleAddDetail(w http.ResponseWriter, r *http.Request) {
	v := h.visitorFor(w, r)
	err := v.Update(func() error {
		v.answer.Set(confirmed(r))
		return v.Detail.AddToCart()
	})
	if err != nil {
		h.writeError(w, "Unable to add to cart: "+err.Error(), http.StatusConflict)
		return
	}
	h.redirectHome(w, r)
}

func (h *Handler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}

	v := h.visitorFor(w, r)
	err := v.Update(func() error {
		return v.Cart.Remove(index)
	})
	if errors.Is(err, cart.ErrIndexOutOfRange) {
		h.writeError(w, "Cart item not found: "+err.Error(), http.StatusNotFound)
		return
	}
	h.redirectHome(w, r)
}

func (h *Handler) cardAction(w http.ResponseWriter, r *http.Request, a storefront.Affordance) {
	index, ok := h.indexParam(w, r)
	if !ok {
		return
	}

	v := h.visitorFor(w, r)
	err := v.Update(func() error {
		if a == storefront.AffordanceAddToCart {
			v.answer.Set(confirmed(r))
		}
		return v.Grid.Activate(index, a)
	})
	if errors.Is(err, storefront.ErrNoSuchCard) {
		h.writeError(w, "Card not found: "+err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.redirectHome(w, r)
}

func (h *Handler) indexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		h.writeError(w, "Invalid index: "+chi.URLParam(r, "index"), http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

// confirmed reports whether the browser's confirm dialog was accepted
func confirmed(r *http.Request) bool {
	return r.FormValue("confirm") == "yes"
}
