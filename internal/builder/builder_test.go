package builder

import (
	"math"
	"math/rand"
	"testing"

	"catering/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dish(id string, tags ...string) catalog.Dish {
	return catalog.Dish{ID: id, Name: "Dish " + id, Category: catalog.CategoryMain, Tags: tags}
}

func menuA() catalog.Menu {
	return catalog.Menu{
		ID:        "A",
		Name:      "Menu A",
		DishCount: 2,
		Price:     catalog.MoneyFromInt(500),
		Dishes: []catalog.Dish{
			dish("D1", catalog.TagChicken),
			dish("D2", catalog.TagPork),
			dish("D3", catalog.TagBeef),
		},
	}
}

func menuB() catalog.Menu {
	return catalog.Menu{
		ID:        "B",
		Name:      "Menu B",
		DishCount: 1,
		Price:     catalog.MoneyFromInt(750),
		Dishes: []catalog.Dish{
			dish("E1", catalog.TagFish),
			dish("E2"),
		},
	}
}

func menuC() catalog.Menu {
	return catalog.Menu{
		ID:        "C",
		Name:      "Menu C",
		DishCount: 1,
		Price:     catalog.MoneyFromInt(300),
		Dishes:    []catalog.Dish{dish("F1")},
	}
}

func newBuilder(t *testing.T, menus ...catalog.Menu) *Builder {
	t.Helper()
	b, err := New(menus)
	require.NoError(t, err)
	return b
}

func activeIDs(b *Builder) []string {
	ids := []string{}
	for _, m := range b.ActiveMenus() {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestNew_RejectsInvalidCatalog(t *testing.T) {
	zero := menuA()
	zero.DishCount = 0
	_, err := New([]catalog.Menu{zero})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	_, err = New([]catalog.Menu{menuA(), menuA()})
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	dupDish := menuA()
	dupDish.Dishes = append(dupDish.Dishes, dish("D1"))
	_, err = New([]catalog.Menu{dupDish})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestNew_StartsEmpty(t *testing.T) {
	b := newBuilder(t, menuA())

	assert.Equal(t, PhaseQuantities, b.Phase())
	assert.Empty(t, b.ActiveMenus())
	assert.Equal(t, 0, b.TotalPortions())
	assert.True(t, b.TotalPrice().IsZero())
	assert.False(t, b.CanChooseDishes())
}

func TestPortions_NeverNegative(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		id := []string{"A", "B"}[rng.Intn(2)]
		if rng.Intn(2) == 0 {
			b.SetPortions(id, rng.Intn(7)-3)
		} else {
			b.SetPortionsDirect(id, rng.Intn(11)-5)
		}
		assert.GreaterOrEqual(t, b.Portions("A"), 0)
		assert.GreaterOrEqual(t, b.Portions("B"), 0)
	}
}

func TestPortions_ZeroClearsSelection(t *testing.T) {
	b := newBuilder(t, menuA())

	b.SetPortionsDirect("A", 2)
	require.True(t, b.StartDishSelection())
	require.True(t, b.ToggleDish("A", "D1"))
	require.Equal(t, 1, b.SelectedCount("A"))

	require.True(t, b.GoToPrevMenu())
	require.Equal(t, PhaseQuantities, b.Phase())
	assert.True(t, b.IsSelected("A", "D1"))

	b.SetPortions("A", -1)
	assert.Equal(t, 1, b.SelectedCount("A"))

	b.SetPortions("A", -5)
	assert.Equal(t, 0, b.Portions("A"))
	assert.Equal(t, 0, b.SelectedCount("A"))
	assert.False(t, b.IsSelected("A", "D1"))
}

func TestPortions_TextInput(t *testing.T) {
	b := newBuilder(t, menuA())

	b.SetPortionsText("A", " 12 ")
	assert.Equal(t, 12, b.Portions("A"))

	b.SetPortionsText("A", "twelve")
	assert.Equal(t, 0, b.Portions("A"))

	b.SetPortionsText("A", "-4")
	assert.Equal(t, 0, b.Portions("A"))
}

func TestPortions_ClampedToMax(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())

	b.SetPortionsDirect("A", math.MaxInt)
	b.SetPortionsDirect("B", math.MaxInt)
	assert.Equal(t, MaxPortions, b.Portions("A"))
	assert.Equal(t, 2*MaxPortions, b.TotalPortions())
	assert.True(t, b.CanChooseDishes())

	require.True(t, b.StartDishSelection())
	require.True(t, b.ToggleDish("A", "D1"))
	require.True(t, b.GoToPrevMenu())

	assert.False(t, b.SetPortions("A", 1))
	assert.False(t, b.SetPortions("A", math.MaxInt))
	assert.Equal(t, MaxPortions, b.Portions("A"))
	assert.True(t, b.IsSelected("A", "D1"))

	assert.True(t, b.SetPortions("A", math.MinInt))
	assert.Equal(t, 0, b.Portions("A"))

	b.SetPortionsText("A", "99999999999999999999999")
	assert.Equal(t, MaxPortions, b.Portions("A"))
}

func TestPortions_UnknownMenuIgnored(t *testing.T) {
	b := newBuilder(t, menuA())

	assert.False(t, b.SetPortions("nope", 3))
	assert.Equal(t, 0, b.TotalPortions())
}

func TestTotalPrice_TracksPortions(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())

	b.SetPortionsDirect("A", 3)
	b.SetPortionsDirect("B", 2)
	assert.Equal(t, "3000.00", b.TotalPrice().StringFixed(2))

	b.SetPortions("A", -1)
	assert.Equal(t, "2500.00", b.TotalPrice().StringFixed(2))
	assert.Equal(t, 4, b.TotalPortions())
}

func TestActiveMenus_CatalogOrder(t *testing.T) {
	b := newBuilder(t, menuA(), menuB(), menuC())

	b.SetPortionsDirect("C", 1)
	assert.Equal(t, []string{"C"}, activeIDs(b))

	b.SetPortionsDirect("A", 1)
	assert.Equal(t, []string{"A", "C"}, activeIDs(b))

	b.SetPortions("B", 1)
	assert.Equal(t, []string{"A", "B", "C"}, activeIDs(b))

	b.SetPortionsDirect("A", 0)
	assert.Equal(t, []string{"B", "C"}, activeIDs(b))
}

func TestToggleDish_QuotaEnforced(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 1)
	require.True(t, b.StartDishSelection())

	assert.True(t, b.ToggleDish("A", "D1"))
	assert.True(t, b.ToggleDish("A", "D2"))
	assert.False(t, b.ToggleDish("A", "D3"))
	assert.Equal(t, []string{"D1", "D2"}, b.SelectedDishIDs("A"))

	assert.True(t, b.ToggleDish("A", "D1"))
	assert.True(t, b.ToggleDish("A", "D3"))
	assert.Equal(t, []string{"D2", "D3"}, b.SelectedDishIDs("A"))
}

func TestToggleDish_RejectsForeignDish(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())
	b.SetPortionsDirect("A", 1)
	require.True(t, b.StartDishSelection())

	assert.False(t, b.ToggleDish("A", "E1"))
	assert.False(t, b.ToggleDish("B", "E1"))
	assert.Equal(t, 0, b.SelectedCount("A"))
}

func TestGoToNextMenu_RequiresExactQuota(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 1)
	require.True(t, b.StartDishSelection())

	assert.False(t, b.GoToNextMenu())
	b.ToggleDish("A", "D1")
	assert.False(t, b.CanAdvance())
	assert.False(t, b.GoToNextMenu())
	assert.Equal(t, PhaseDishSelection, b.Phase())
}

func TestScenarioA_SingleMenuToPayload(t *testing.T) {
	b := newBuilder(t, menuA())

	b.SetPortionsDirect("A", 3)
	assert.Equal(t, []string{"A"}, activeIDs(b))
	assert.Equal(t, "1500.00", b.TotalPrice().StringFixed(2))

	require.True(t, b.StartDishSelection())
	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D2")
	require.True(t, b.GoToNextMenu())
	assert.Equal(t, PhaseCheckout, b.Phase())

	p := b.Payload()
	require.Len(t, p.Orders, 1)
	line := p.Orders[0]
	assert.Equal(t, "A", line.MenuID)
	assert.Equal(t, 3, line.Portions)
	assert.Equal(t, "500.00", line.PricePerPortion.StringFixed(2))
	assert.Equal(t, "1500.00", line.TotalPrice.StringFixed(2))
	assert.Equal(t, 2, line.DishCount)
	assert.Equal(t, []string{"D1", "D2"}, line.SelectedDishIDs)
	assert.Equal(t, "1500.00", p.TotalPrice.StringFixed(2))
	assert.Equal(t, 3, p.TotalPortions)
}

func TestScenarioB_ZeroedPortionsBlockSelection(t *testing.T) {
	b := newBuilder(t, menuA())

	b.SetPortionsDirect("A", 2)
	b.SetPortionsDirect("A", 0)

	assert.Empty(t, b.ActiveMenus())
	assert.False(t, b.CanChooseDishes())
	assert.False(t, b.StartDishSelection())
	assert.Equal(t, PhaseQuantities, b.Phase())
}

func TestScenarioC_TwoMenusAdvanceInOrder(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())
	b.SetPortionsDirect("A", 2)
	b.SetPortionsDirect("B", 1)
	require.True(t, b.StartDishSelection())

	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D3")
	require.True(t, b.GoToNextMenu())
	assert.Equal(t, PhaseDishSelection, b.Phase())
	current, ok := b.CurrentMenu()
	require.True(t, ok)
	assert.Equal(t, "B", current.ID)

	b.ToggleDish("B", "E2")
	require.True(t, b.GoToNextMenu())
	assert.Equal(t, PhaseCheckout, b.Phase())
}

func TestBackNavigation_KeepsSelections(t *testing.T) {
	b := newBuilder(t, menuA(), menuB())
	b.SetPortionsDirect("A", 2)
	b.SetPortionsDirect("B", 1)
	b.StartDishSelection()
	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D2")
	b.GoToNextMenu()
	b.ToggleDish("B", "E1")
	require.True(t, b.GoToNextMenu())

	require.True(t, b.BackToDishes())
	current, _ := b.CurrentMenu()
	assert.Equal(t, "B", current.ID)

	require.True(t, b.GoToPrevMenu())
	current, _ = b.CurrentMenu()
	assert.Equal(t, "A", current.ID)

	require.True(t, b.GoToPrevMenu())
	assert.Equal(t, PhaseQuantities, b.Phase())
	assert.Equal(t, []string{"D1", "D2"}, b.SelectedDishIDs("A"))
	assert.Equal(t, []string{"E1"}, b.SelectedDishIDs("B"))
}

func TestPortionsLockedOutsideQuantities(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 2)
	b.StartDishSelection()

	assert.False(t, b.SetPortions("A", 1))
	assert.Equal(t, 2, b.Portions("A"))
}

func TestFilterAndExpansion(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 1)
	b.StartDishSelection()

	assert.Len(t, b.VisibleGroups(), 3)

	assert.True(t, b.SetFilter(GroupPork))
	visible := b.VisibleGroups()
	require.Len(t, visible, 1)
	assert.Equal(t, GroupPork, visible[0].Group)

	assert.False(t, b.SetFilter(GroupFish))
	assert.Equal(t, GroupPork, b.Filter())

	assert.True(t, b.ToggleExpanded(GroupBeef))
	assert.True(t, b.Expanded(GroupBeef))
	assert.False(t, b.ToggleExpanded(GroupFasting))

	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D2")
	b.GoToNextMenu()
	b.BackToDishes()
	assert.Equal(t, GroupAll, b.Filter())
	assert.False(t, b.Expanded(GroupBeef))
}

func TestProgress_Markers(t *testing.T) {
	b := newBuilder(t, menuA(), menuB(), menuC())
	b.SetPortionsDirect("A", 1)
	b.SetPortionsDirect("B", 1)
	b.SetPortionsDirect("C", 1)
	b.StartDishSelection()
	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D2")
	b.GoToNextMenu()

	p := b.Progress()
	assert.Equal(t, 0, p.Selected)
	assert.Equal(t, 1, p.Required)
	require.Len(t, p.Menus, 3)
	assert.Equal(t, StatusComplete, p.Menus[0].Status)
	assert.Equal(t, StatusCurrent, p.Menus[1].Status)
	assert.Equal(t, StatusPending, p.Menus[2].Status)
}

func TestSummary_ListsDishNames(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 4)
	b.StartDishSelection()
	b.ToggleDish("A", "D3")
	b.ToggleDish("A", "D1")
	b.GoToNextMenu()

	s := b.Summary()
	require.Len(t, s.Lines, 1)
	assert.Equal(t, []string{"Dish D1", "Dish D3"}, s.Lines[0].DishNames)
	assert.Equal(t, "2000.00", s.Lines[0].Subtotal.StringFixed(2))
	assert.Equal(t, "2000.00", s.TotalPrice.StringFixed(2))
}
