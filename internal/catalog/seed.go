package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// seedNamespace keeps ids stable across repeated imports of the same file.
var seedNamespace = uuid.MustParse("6f1c1c52-3f0e-4c2e-9a57-4a8f0f5b8c11")

type SeedFile struct {
	Dishes []SeedDish `yaml:"dishes"`
	Menus  []SeedMenu `yaml:"menus"`
}

type SeedDish struct {
	Key  string `yaml:"key"`
	Dish `yaml:",inline"`
}

type SeedMenu struct {
	Key         string   `yaml:"key"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	DishCount   int      `yaml:"dishCount"`
	Price       Money    `yaml:"price"`
	Published   *bool    `yaml:"published"`
	Dishes      []string `yaml:"dishes"`
}

type SeedResult struct {
	DishesCreated int
	DishesUpdated int
	MenusCreated  int
	MenusUpdated  int
}

func seedID(kind, key string) string {
	return uuid.NewSHA1(seedNamespace, []byte(kind+":"+key)).String()
}

// Seed upserts the dishes and menus described by a YAML document. Entries are
// matched by key, so importing the same file twice updates in place.
func (s *Service) Seed(ctx context.Context, r io.Reader) (*SeedResult, error) {
	var file SeedFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	res := &SeedResult{}
	dishIDs := map[string]string{}

	for _, sd := range file.Dishes {
		if sd.Key == "" {
			return nil, fmt.Errorf("dish %q: key is required", sd.Name)
		}
		dish := sd.Dish
		dish.ID = seedID("dish", sd.Key)
		dishIDs[sd.Key] = dish.ID

		created, err := s.upsertDish(ctx, &dish)
		if err != nil {
			return nil, fmt.Errorf("dish %s: %w", sd.Key, err)
		}
		if created {
			res.DishesCreated++
		} else {
			res.DishesUpdated++
		}
	}

	for pos, sm := range file.Menus {
		if sm.Key == "" {
			return nil, fmt.Errorf("menu %q: key is required", sm.Name)
		}

		ids := make([]string, 0, len(sm.Dishes))
		for _, key := range sm.Dishes {
			id, ok := dishIDs[key]
			if !ok {
				return nil, fmt.Errorf("menu %s: unknown dish key %s", sm.Key, key)
			}
			ids = append(ids, id)
		}

		published := true
		if sm.Published != nil {
			published = *sm.Published
		}
		menu := &Menu{
			ID:          seedID("menu", sm.Key),
			Name:        sm.Name,
			Description: sm.Description,
			DishCount:   sm.DishCount,
			Price:       sm.Price,
			Position:    pos,
			Published:   published,
		}

		_, err := s.repo.GetMenu(ctx, menu.ID)
		switch {
		case errors.Is(err, ErrNotFound):
			if _, err := s.CreateMenu(ctx, menu, ids); err != nil {
				return nil, fmt.Errorf("menu %s: %w", sm.Key, err)
			}
			res.MenusCreated++
		case err != nil:
			return nil, err
		default:
			if _, err := s.UpdateMenu(ctx, menu, ids); err != nil {
				return nil, fmt.Errorf("menu %s: %w", sm.Key, err)
			}
			res.MenusUpdated++
		}
	}

	return res, nil
}

func (s *Service) upsertDish(ctx context.Context, dish *Dish) (bool, error) {
	_, err := s.repo.GetDish(ctx, dish.ID)
	if errors.Is(err, ErrNotFound) {
		return true, s.CreateDish(ctx, dish)
	}
	if err != nil {
		return false, err
	}
	return false, s.UpdateDish(ctx, dish)
}
