package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/greenleaf-co/plantshop/internal/models"
)

// Source variants spell category fields differently; keys are tried in order.
var (
	categoryNameKeys = []string{"category", "name", "category_name"}
	categoryIDKeys   = []string{"id", "category_id"}
	plantIDKeys      = []string{"id", "plant_id"}
)

type rawRecord map[string]json.RawMessage

func decodeCategories(body []byte) ([]models.Category, error) {
	list, err := decodeList(body, "categories", "data")
	if err != nil {
		return nil, err
	}

	categories := make([]models.Category, 0, len(list))
	for _, rec := range list {
		name := rec.first(categoryNameKeys...)
		if name == "" {
			name = models.UnnamedCategory
		}
		categories = append(categories, models.Category{
			ID:   rec.first(categoryIDKeys...),
			Name: name,
		})
	}
	return categories, nil
}

func decodePlants(body []byte) ([]models.Plant, error) {
	list, err := decodeList(body, "plants", "data")
	if err != nil {
		return nil, err
	}

	plants := make([]models.Plant, 0, len(list))
	for i, rec := range list {
		var price models.Price
		if raw, ok := rec["price"]; ok {
			if err := json.Unmarshal(raw, &price); err != nil {
				return nil, fmt.Errorf("plant %d: invalid price %s: %w", i, string(raw), err)
			}
		}
		plants = append(plants, models.Plant{
			ID:          rec.first(plantIDKeys...),
			Name:        rec.first("name"),
			Image:       rec.first("image"),
			Description: rec.first("description"),
			Category:    rec.first("category"),
			Price:       price,
		})
	}
	return plants, nil
}

// decodeList returns the array stored under the first present, non-null key.
// A response carrying none of the keys is an empty list.
func decodeList(body []byte, keys ...string) ([]rawRecord, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	for _, key := range keys {
		raw, ok := envelope[key]
		if !ok || isNull(raw) {
			continue
		}
		var list []rawRecord
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		return list, nil
	}
	return []rawRecord{}, nil
}

// first returns the first non-empty value among keys, rendered as a string.
// Numbers keep their JSON spelling so numeric ids stay stable.
func (r rawRecord) first(keys ...string) string {
	for _, key := range keys {
		raw, ok := r[key]
		if !ok || isNull(raw) {
			continue
		}
		if s := scalar(raw); s != "" {
			return s
		}
	}
	return ""
}

func scalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '{', '[':
		return ""
	default:
		return string(raw)
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
