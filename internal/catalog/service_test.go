package catalog

import (
	"context"
	"strings"
	"testing"

	"catering/internal/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService() (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	return NewService(repo, zap.NewNop()), repo
}

func mustDish(t *testing.T, s *Service, name string, tags ...string) Dish {
	t.Helper()
	d := &Dish{Name: name, Category: CategoryMain, Tags: tags}
	require.NoError(t, s.CreateDish(context.Background(), d))
	return *d
}

func TestCreateDish_Validation(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	err := s.CreateDish(ctx, &Dish{Name: "", Category: CategoryMain})
	ve, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "name", ve.Field)

	err = s.CreateDish(ctx, &Dish{Name: "Soup", Category: "drink"})
	ve, ok = validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "category", ve.Field)

	err = s.CreateDish(ctx, &Dish{Name: "Soup", Category: CategoryMain, Tags: []string{"lamb"}})
	ve, ok = validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "tags", ve.Field)
}

func TestCreateDish_NormalizesTags(t *testing.T) {
	s, _ := newTestService()

	d := &Dish{Name: " Karađorđeva ", Category: "Main", Tags: []string{"Pork", "pork", " chicken "}}
	require.NoError(t, s.CreateDish(context.Background(), d))

	assert.Equal(t, "Karađorđeva", d.Name)
	assert.Equal(t, CategoryMain, d.Category)
	assert.Equal(t, []string{"chicken", "pork"}, d.Tags)
	assert.NotEmpty(t, d.ID)
}

func TestCreateMenu_RejectsZeroDishCount(t *testing.T) {
	s, _ := newTestService()

	_, err := s.CreateMenu(context.Background(), &Menu{Name: "Empty", DishCount: 0, Price: MoneyFromInt(100)}, nil)
	ve, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "dishCount", ve.Field)
}

func TestCreateMenu_RejectsFractionalCents(t *testing.T) {
	s, _ := newTestService()
	price, _ := ParseMoney("10.005")

	_, err := s.CreateMenu(context.Background(), &Menu{Name: "M", DishCount: 1, Price: price}, nil)
	ve, ok := validation.As(err)
	require.True(t, ok)
	assert.Equal(t, "price", ve.Field)
}

func TestCreateMenu_WithDishes(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	d1 := mustDish(t, s, "Chicken", TagChicken)
	d2 := mustDish(t, s, "Pork", TagPork)

	menu, err := s.CreateMenu(ctx, &Menu{Name: "A", DishCount: 2, Price: MoneyFromInt(500), Published: true}, []string{d2.ID, d1.ID})
	require.NoError(t, err)

	require.Len(t, menu.Dishes, 2)
	assert.Equal(t, d2.ID, menu.Dishes[0].ID, "menu keeps dish order as given")
	assert.Equal(t, d1.ID, menu.Dishes[1].ID)
}

func TestCreateMenu_DuplicateDish(t *testing.T) {
	s, _ := newTestService()
	d := mustDish(t, s, "Chicken", TagChicken)

	_, err := s.CreateMenu(context.Background(), &Menu{Name: "A", DishCount: 1, Price: MoneyFromInt(1)}, []string{d.ID, d.ID})
	_, ok := validation.As(err)
	assert.True(t, ok)
}

func TestCreateMenu_UnknownDishStoresNothing(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	d := mustDish(t, s, "Chicken", TagChicken)

	_, err := s.CreateMenu(ctx, &Menu{Name: "A", DishCount: 2, Price: MoneyFromInt(500)}, []string{d.ID, uuid.New().String()})
	assert.ErrorIs(t, err, ErrNotFound)

	menus, err := s.ListMenus(ctx)
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestUpdateMenu_UnknownDishKeepsMenu(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	d := mustDish(t, s, "Chicken", TagChicken)
	menu, err := s.CreateMenu(ctx, &Menu{Name: "A", DishCount: 1, Price: MoneyFromInt(500)}, []string{d.ID})
	require.NoError(t, err)

	_, err = s.UpdateMenu(ctx, &Menu{ID: menu.ID, Name: "Renamed", DishCount: 1, Price: MoneyFromInt(900)}, []string{uuid.New().String()})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetMenu(ctx, menu.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", got.Name)
	assert.Equal(t, "500.00", got.Price.String())
	require.Len(t, got.Dishes, 1)
	assert.Equal(t, d.ID, got.Dishes[0].ID)
}

func TestCatalog_OnlyPublishedAndOrderable(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	d1 := mustDish(t, s, "Chicken", TagChicken)
	d2 := mustDish(t, s, "Pork", TagPork)

	_, err := s.CreateMenu(ctx, &Menu{Name: "Second", DishCount: 1, Price: MoneyFromInt(300), Position: 2, Published: true}, []string{d1.ID})
	require.NoError(t, err)
	_, err = s.CreateMenu(ctx, &Menu{Name: "First", DishCount: 2, Price: MoneyFromInt(500), Position: 1, Published: true}, []string{d1.ID, d2.ID})
	require.NoError(t, err)
	_, err = s.CreateMenu(ctx, &Menu{Name: "Hidden", DishCount: 1, Price: MoneyFromInt(100), Published: false}, []string{d1.ID})
	require.NoError(t, err)
	_, err = s.CreateMenu(ctx, &Menu{Name: "Short", DishCount: 3, Price: MoneyFromInt(100), Published: true}, []string{d1.ID})
	require.NoError(t, err)

	menus, err := s.Catalog(ctx)
	require.NoError(t, err)

	require.Len(t, menus, 2)
	assert.Equal(t, "First", menus[0].Name)
	assert.Equal(t, "Second", menus[1].Name)
}

func TestDeleteDish_RemovesFromMenus(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()
	d1 := mustDish(t, s, "Chicken", TagChicken)
	d2 := mustDish(t, s, "Pork", TagPork)

	menu, err := s.CreateMenu(ctx, &Menu{Name: "A", DishCount: 1, Price: MoneyFromInt(1)}, []string{d1.ID, d2.ID})
	require.NoError(t, err)

	require.NoError(t, s.DeleteDish(ctx, d1.ID))

	got, err := s.GetMenu(ctx, menu.ID)
	require.NoError(t, err)
	require.Len(t, got.Dishes, 1)
	assert.Equal(t, d2.ID, got.Dishes[0].ID)
}

func TestGetDish_InvalidID(t *testing.T) {
	s, _ := newTestService()
	_, err := s.GetDish(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

const seedYAML = `
dishes:
  - key: karadjordjeva
    name: Karađorđeva šnicla
    category: main
    tags: [pork]
  - key: piletina
    name: Pileći file
    category: main
    tags: [chicken]
  - key: pasulj
    name: Prebranac
    category: side
    fasting: true
menus:
  - key: classic
    name: Classic
    dishCount: 2
    price: "1200.50"
    dishes: [karadjordjeva, piletina, pasulj]
`

func TestSeed_Idempotent(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	res, err := s.Seed(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, res.DishesCreated)
	assert.Equal(t, 1, res.MenusCreated)

	res, err = s.Seed(ctx, strings.NewReader(seedYAML))
	require.NoError(t, err)
	assert.Equal(t, 3, res.DishesUpdated)
	assert.Equal(t, 1, res.MenusUpdated)

	menus, err := s.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, menus, 1)
	assert.Equal(t, "1200.50", menus[0].Price.StringFixed(2))
	assert.Len(t, menus[0].Dishes, 3)
	assert.True(t, menus[0].Dishes[2].IsFasting)
}

func TestSeed_UnknownDishKey(t *testing.T) {
	s, _ := newTestService()

	_, err := s.Seed(context.Background(), strings.NewReader(`
menus:
  - key: m
    name: M
    dishCount: 1
    price: "10"
    dishes: [missing]
`))
	assert.Error(t, err)
}
