package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	mu         sync.RWMutex
	dishes     map[string]Dish
	menus      map[string]Menu
	menuDishes map[string][]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		dishes:     make(map[string]Dish),
		menus:      make(map[string]Menu),
		menuDishes: make(map[string][]string),
	}
}

func (r *InMemoryRepository) ListDishes(ctx context.Context) ([]Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Dish, 0, len(r.dishes))
	for _, d := range r.dishes {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *InMemoryRepository) GetDish(ctx context.Context, id string) (*Dish, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.dishes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (r *InMemoryRepository) CreateDish(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if dish.ID == "" {
		dish.ID = uuid.New().String()
	}
	now := time.Now()
	dish.CreatedAt, dish.UpdatedAt = now, now
	r.dishes[dish.ID] = *dish
	return nil
}

func (r *InMemoryRepository) UpdateDish(ctx context.Context, dish *Dish) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.dishes[dish.ID]
	if !ok {
		return ErrNotFound
	}
	dish.CreatedAt = existing.CreatedAt
	dish.UpdatedAt = time.Now()
	r.dishes[dish.ID] = *dish
	return nil
}

func (r *InMemoryRepository) DeleteDish(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.dishes[id]; !ok {
		return ErrNotFound
	}
	delete(r.dishes, id)
	for menuID, ids := range r.menuDishes {
		r.menuDishes[menuID] = without(ids, id)
	}
	return nil
}

func (r *InMemoryRepository) DishNames(ctx context.Context, ids []string) (map[string]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if d, ok := r.dishes[id]; ok {
			names[id] = d.Name
		}
	}
	return names, nil
}

func (r *InMemoryRepository) ListMenus(ctx context.Context, publishedOnly bool) ([]Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Menu{}
	for _, m := range r.menus {
		if publishedOnly && !m.Published {
			continue
		}
		out = append(out, r.withDishes(m))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *InMemoryRepository) GetMenu(ctx context.Context, id string) (*Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.menus[id]
	if !ok {
		return nil, ErrNotFound
	}
	m = r.withDishes(m)
	return &m, nil
}

func (r *InMemoryRepository) CreateMenu(ctx context.Context, menu *Menu, dishIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkDishes(dishIDs); err != nil {
		return err
	}
	if menu.ID == "" {
		menu.ID = uuid.New().String()
	}
	now := time.Now()
	menu.CreatedAt, menu.UpdatedAt = now, now
	r.storeMenu(menu, dishIDs)
	return nil
}

func (r *InMemoryRepository) UpdateMenu(ctx context.Context, menu *Menu, dishIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.menus[menu.ID]
	if !ok {
		return ErrNotFound
	}
	if err := r.checkDishes(dishIDs); err != nil {
		return err
	}
	menu.CreatedAt = existing.CreatedAt
	menu.UpdatedAt = time.Now()
	r.storeMenu(menu, dishIDs)
	return nil
}

func (r *InMemoryRepository) DeleteMenu(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.menus[id]; !ok {
		return ErrNotFound
	}
	delete(r.menus, id)
	delete(r.menuDishes, id)
	return nil
}

func (r *InMemoryRepository) SetMenuDishes(ctx context.Context, menuID string, dishIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.menus[menuID]; !ok {
		return ErrNotFound
	}
	if err := r.checkDishes(dishIDs); err != nil {
		return err
	}
	r.menuDishes[menuID] = append([]string(nil), dishIDs...)
	return nil
}

// caller holds r.mu
func (r *InMemoryRepository) checkDishes(ids []string) error {
	for _, id := range ids {
		if _, ok := r.dishes[id]; !ok {
			return ErrNotFound
		}
	}
	return nil
}

// caller holds r.mu
func (r *InMemoryRepository) storeMenu(menu *Menu, dishIDs []string) {
	stored := *menu
	stored.Dishes = nil
	r.menus[menu.ID] = stored
	if dishIDs != nil {
		r.menuDishes[menu.ID] = append([]string(nil), dishIDs...)
	}
}

// caller holds r.mu
func (r *InMemoryRepository) withDishes(m Menu) Menu {
	m.Dishes = []Dish{}
	for _, id := range r.menuDishes[m.ID] {
		if d, ok := r.dishes[id]; ok {
			m.Dishes = append(m.Dishes, d)
		}
	}
	return m
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
