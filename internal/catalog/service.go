package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
}

func NewService(repo Repository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log.Named("catalog")}
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Catalog loader (PUBLIC)
// --------------------------------------------------

// Catalog returns the published menus a customer can order, in catalog
// order with dishes populated.
func (s *Service) Catalog(ctx context.Context) ([]Menu, error) {
	menus, err := s.repo.ListMenus(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}

	out := make([]Menu, 0, len(menus))
	for _, m := range menus {
		if !m.Orderable() {
			s.log.Warn("menu left out of catalog",
				zap.String("menu_id", m.ID),
				zap.Int("dish_count", m.DishCount),
				zap.Int("dishes", len(m.Dishes)),
			)
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Service) DishNames(ctx context.Context, ids []string) (map[string]string, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if validID(id) == nil {
			valid = append(valid, id)
		}
	}
	return s.repo.DishNames(ctx, valid)
}

// --------------------------------------------------
// Dishes
// --------------------------------------------------

// ListDishes returns all dishes, optionally restricted to one category.
func (s *Service) ListDishes(ctx context.Context, category string) ([]Dish, error) {
	dishes, err := s.repo.ListDishes(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return dishes, nil
	}

	out := []Dish{}
	for _, d := range dishes {
		if d.Category == category {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *Service) GetDish(ctx context.Context, id string) (*Dish, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return s.repo.GetDish(ctx, id)
}

func (s *Service) CreateDish(ctx context.Context, dish *Dish) error {
	if err := ValidateDish(dish); err != nil {
		return err
	}
	if err := s.repo.CreateDish(ctx, dish); err != nil {
		return err
	}
	s.log.Info("dish created", zap.String("dish_id", dish.ID), zap.String("name", dish.Name))
	return nil
}

func (s *Service) UpdateDish(ctx context.Context, dish *Dish) error {
	if err := validID(dish.ID); err != nil {
		return err
	}
	if err := ValidateDish(dish); err != nil {
		return err
	}
	return s.repo.UpdateDish(ctx, dish)
}

func (s *Service) DeleteDish(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := s.repo.DeleteDish(ctx, id); err != nil {
		return err
	}
	s.log.Info("dish deleted", zap.String("dish_id", id))
	return nil
}

// --------------------------------------------------
// Menus
// --------------------------------------------------

func (s *Service) ListMenus(ctx context.Context) ([]Menu, error) {
	return s.repo.ListMenus(ctx, false)
}

func (s *Service) GetMenu(ctx context.Context, id string) (*Menu, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	return s.repo.GetMenu(ctx, id)
}

// CreateMenu stores the menu and, when dishIDs is non-nil, its dish list.
func (s *Service) CreateMenu(ctx context.Context, menu *Menu, dishIDs []string) (*Menu, error) {
	if err := ValidateMenu(menu); err != nil {
		return nil, err
	}
	if err := s.checkDishIDs(dishIDs); err != nil {
		return nil, err
	}

	if err := s.repo.CreateMenu(ctx, menu, dishIDs); err != nil {
		return nil, err
	}

	s.log.Info("menu created", zap.String("menu_id", menu.ID), zap.String("name", menu.Name))
	return s.repo.GetMenu(ctx, menu.ID)
}

// UpdateMenu replaces the menu fields; a nil dishIDs keeps the dish list.
func (s *Service) UpdateMenu(ctx context.Context, menu *Menu, dishIDs []string) (*Menu, error) {
	if err := validID(menu.ID); err != nil {
		return nil, err
	}
	if err := ValidateMenu(menu); err != nil {
		return nil, err
	}
	if err := s.checkDishIDs(dishIDs); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateMenu(ctx, menu, dishIDs); err != nil {
		return nil, err
	}
	return s.repo.GetMenu(ctx, menu.ID)
}

func (s *Service) SetMenuDishes(ctx context.Context, menuID string, dishIDs []string) (*Menu, error) {
	if err := validID(menuID); err != nil {
		return nil, err
	}
	if err := s.checkDishIDs(dishIDs); err != nil {
		return nil, err
	}
	if err := s.repo.SetMenuDishes(ctx, menuID, dishIDs); err != nil {
		return nil, err
	}
	return s.repo.GetMenu(ctx, menuID)
}

func (s *Service) DeleteMenu(ctx context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenu(ctx, id); err != nil {
		return err
	}
	s.log.Info("menu deleted", zap.String("menu_id", id))
	return nil
}

func (s *Service) checkDishIDs(ids []string) error {
	if err := validateDishIDs(ids); err != nil {
		return err
	}
	for _, id := range ids {
		if validID(id) != nil {
			return ErrNotFound
		}
	}
	return nil
}
