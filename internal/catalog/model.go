package catalog

import "time"

const (
	CategoryAppetizer = "appetizer"
	CategorySalad     = "salad"
	CategoryMain      = "main"
	CategorySide      = "side"
	CategoryDessert   = "dessert"
)

var Categories = []string{
	CategoryAppetizer,
	CategorySalad,
	CategoryMain,
	CategorySide,
	CategoryDessert,
}

// Meat and diet markers a dish can carry.
const (
	TagPork       = "pork"
	TagChicken    = "chicken"
	TagBeef       = "beef"
	TagFish       = "fish"
	TagVegetarian = "vegetarian"
	TagVegan      = "vegan"
)

var Tags = []string{TagPork, TagChicken, TagBeef, TagFish, TagVegetarian, TagVegan}

type Dish struct {
	ID           string    `json:"id" yaml:"-"`
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description" yaml:"description"`
	Category     string    `json:"category" yaml:"category"`
	Tags         []string  `json:"tags" yaml:"tags"`
	IsFasting    bool      `json:"isFasting" yaml:"fasting"`
	IsVegetarian bool      `json:"isVegetarian" yaml:"vegetarian"`
	IsVegan      bool      `json:"isVegan" yaml:"vegan"`
	IsGlutenFree bool      `json:"isGlutenFree" yaml:"glutenFree"`
	ImageURL     *string   `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"-"`
}

// HasTag reports whether the dish carries tag.
func (d Dish) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Menu is a purchasable package: a per-portion price and the exact number
// of dishes a customer picks from Dishes.
type Menu struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DishCount   int       `json:"dishCount"`
	Price       Money     `json:"price"`
	Position    int       `json:"position"`
	Published   bool      `json:"published"`
	Dishes      []Dish    `json:"dishes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Orderable reports whether a customer can complete this menu's selection.
func (m Menu) Orderable() bool {
	return m.DishCount >= 1 && m.DishCount <= len(m.Dishes)
}

func (m Menu) DishIDs() []string {
	ids := make([]string, len(m.Dishes))
	for i, d := range m.Dishes {
		ids[i] = d.ID
	}
	return ids
}
