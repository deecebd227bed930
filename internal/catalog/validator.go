package catalog

import (
	"sort"
	"strings"

	"catering/internal/validation"
)

const maxNameLength = 255

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// normalizeTags lower-cases, de-duplicates and sorts tags.
func normalizeTags(tags []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func ValidateDish(d *Dish) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.ToLower(strings.TrimSpace(d.Category))
	d.Tags = normalizeTags(d.Tags)

	if d.Name == "" {
		return validation.New("name", "dish name is required")
	}
	if len(d.Name) > maxNameLength {
		return validation.New("name", "dish name must be less than 255 characters")
	}
	if !contains(Categories, d.Category) {
		return validation.New("category", "unknown category "+d.Category)
	}
	for _, t := range d.Tags {
		if !contains(Tags, t) {
			return validation.New("tags", "unknown tag "+t)
		}
	}
	if d.ImageURL != nil && strings.TrimSpace(*d.ImageURL) == "" {
		d.ImageURL = nil
	}
	return nil
}

func ValidateMenu(m *Menu) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Description = strings.TrimSpace(m.Description)

	if m.Name == "" {
		return validation.New("name", "menu name is required")
	}
	if len(m.Name) > maxNameLength {
		return validation.New("name", "menu name must be less than 255 characters")
	}
	if m.DishCount < 1 {
		return validation.New("dishCount", "dish count must be at least 1")
	}
	if m.Price.IsNegative() {
		return validation.New("price", "price must not be negative")
	}
	if !m.Price.Equal(m.Price.Round(2)) {
		return validation.New("price", "price must have at most 2 decimals")
	}
	return nil
}

func validateDishIDs(ids []string) error {
	seen := map[string]bool{}
	for _, id := range ids {
		if id == "" {
			return validation.New("dishIds", "dish id must not be empty")
		}
		if seen[id] {
			return validation.New("dishIds", "duplicate dish id "+id)
		}
		seen[id] = true
	}
	return nil
}
