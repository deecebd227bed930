package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repository defines all database operations for dishes and menus.
type Repository interface {

	// -------------------------------
	// Dishes
	// -------------------------------

	ListDishes(ctx context.Context) ([]Dish, error)
	GetDish(ctx context.Context, id string) (*Dish, error)
	CreateDish(ctx context.Context, dish *Dish) error
	UpdateDish(ctx context.Context, dish *Dish) error
	DeleteDish(ctx context.Context, id string) error

	// Names keyed by id; unknown ids are absent from the result
	DishNames(ctx context.Context, ids []string) (map[string]string, error)

	// -------------------------------
	// Menus
	// -------------------------------

	// Menus ordered by position then name, dishes populated in menu order
	ListMenus(ctx context.Context, publishedOnly bool) ([]Menu, error)
	GetMenu(ctx context.Context, id string) (*Menu, error)
	// Menu row and dish list are written atomically; nil dishIDs leaves
	// the list untouched
	CreateMenu(ctx context.Context, menu *Menu, dishIDs []string) error
	UpdateMenu(ctx context.Context, menu *Menu, dishIDs []string) error
	DeleteMenu(ctx context.Context, id string) error

	// Replace the ordered dish list of a menu
	SetMenuDishes(ctx context.Context, menuID string, dishIDs []string) error
}
