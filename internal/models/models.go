package models

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
)

// UnnamedCategory is shown for categories the catalog returned without a name
const UnnamedCategory = "Unnamed"

// Category represents a plant category from the catalog
type Category struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Plant represents a plant listing from the catalog
type Plant struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Image       string `json:"image" yaml:"image"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`
	Price       Price  `json:"price" yaml:"price"`
}

// CartItem is a value copy of a Plant held by the cart
type CartItem struct {
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// NewCartItem copies plant into a cart line
func NewCartItem(p Plant) CartItem {
	return CartItem{
		Name:        p.Name,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Price:       float64(p.Price),
	}
}

// Price is a numeric price that accepts either a JSON number or a JSON string
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Price(f)
	return nil
}

// ParsePrice parses the longest numeric prefix of s, the way a browser's
// parseFloat does. Values with no numeric prefix parse as 0.
func ParsePrice(s string) Price {
	s = strings.TrimSpace(s)
	end := numericPrefix(s)
	if end == 0 {
		if s != "" {
			slog.Warn("Unparseable price, using 0", "price", s)
		}
		return 0
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		slog.Warn("Unparseable price, using 0", "price", s, "err", err)
		return 0
	}
	return Price(f)
}

// numericPrefix returns the length of the longest prefix of s matching
// [+-]?digits[.digits][e[+-]digits]
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		j := i + 1
		frac := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			frac++
		}
		if digits > 0 || frac > 0 {
			i = j
			digits += frac
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exp := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exp++
		}
		if exp > 0 {
			i = j
		}
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
