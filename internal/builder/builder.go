package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"catering/internal/catalog"

	"github.com/shopspring/decimal"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

// MaxPortions caps a single menu's portion count. Larger inputs are clamped.
const MaxPortions = 10000

// Draft is the in-progress order: portions per menu and the dishes chosen
// for each active menu. A menu id is present in Dishes only while its
// portion count is above zero.
type Draft struct {
	MenuPortions map[string]int
	MenuDishes   map[string]map[string]struct{}
}

// Builder owns one customer's order wizard. It is not safe for concurrent
// use; callers serialize access.
type Builder struct {
	menus     []catalog.Menu
	menuIndex map[string]int
	dishIndex map[string]map[string]int

	draft   Draft
	phase   Phase
	current int

	filter   Group
	expanded map[Group]bool

	submitting bool
	completed  bool
}

// New starts an empty draft over a read-only catalog. Menu ids must be
// unique, dish ids unique within a menu, and every menu must require at
// least one dish.
func New(menus []catalog.Menu) (*Builder, error) {
	b := &Builder{
		menus:     menus,
		menuIndex: make(map[string]int, len(menus)),
		dishIndex: make(map[string]map[string]int, len(menus)),
		draft: Draft{
			MenuPortions: map[string]int{},
			MenuDishes:   map[string]map[string]struct{}{},
		},
		expanded: map[Group]bool{},
	}

	for i, m := range menus {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: menu at %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := b.menuIndex[m.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate menu %s", ErrInvalidCatalog, m.ID)
		}
		if m.DishCount < 1 {
			return nil, fmt.Errorf("%w: menu %s requires %d dishes", ErrInvalidCatalog, m.ID, m.DishCount)
		}
		b.menuIndex[m.ID] = i

		dishes := make(map[string]int, len(m.Dishes))
		for j, d := range m.Dishes {
			if _, dup := dishes[d.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate dish %s in menu %s", ErrInvalidCatalog, d.ID, m.ID)
			}
			dishes[d.ID] = j
		}
		b.dishIndex[m.ID] = dishes
	}

	return b, nil
}

func (b *Builder) Phase() Phase          { return b.phase }
func (b *Builder) Completed() bool       { return b.completed }
func (b *Builder) Submitting() bool      { return b.submitting }
func (b *Builder) Menus() []catalog.Menu { return b.menus }

// frozen drafts accept no edits: a submission is in flight or done.
func (b *Builder) frozen() bool {
	return b.submitting || b.completed
}

func (b *Builder) menu(id string) (catalog.Menu, bool) {
	i, ok := b.menuIndex[id]
	if !ok {
		return catalog.Menu{}, false
	}
	return b.menus[i], true
}

// --------------------------------------------------
// Quantities
// --------------------------------------------------

// Portions returns the portion count for a menu (0 when inactive).
func (b *Builder) Portions(menuID string) int {
	return b.draft.MenuPortions[menuID]
}

// SetPortions adds delta to a menu's portions, kept within [0, MaxPortions].
func (b *Builder) SetPortions(menuID string, delta int) bool {
	cur := b.draft.MenuPortions[menuID]
	switch {
	case delta > MaxPortions-cur:
		return b.applyPortions(menuID, MaxPortions)
	case delta < -cur:
		return b.applyPortions(menuID, 0)
	}
	return b.applyPortions(menuID, cur+delta)
}

// SetPortionsDirect sets a menu's portions to value clamped to [0, MaxPortions].
func (b *Builder) SetPortionsDirect(menuID string, value int) bool {
	return b.applyPortions(menuID, value)
}

// SetPortionsText sets portions from free-text input; anything that does
// not parse as an integer counts as zero. Out-of-range numbers clamp.
func (b *Builder) SetPortionsText(menuID, text string) bool {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		value = 0
	}
	return b.applyPortions(menuID, value)
}

// applyPortions is the only writer of MenuPortions. Reaching zero makes the
// menu inactive and drops its dish selection.
func (b *Builder) applyPortions(menuID string, value int) bool {
	if b.frozen() || b.phase != PhaseQuantities {
		return false
	}
	if _, ok := b.menu(menuID); !ok {
		return false
	}
	value = min(max(value, 0), MaxPortions)

	prev := b.draft.MenuPortions[menuID]
	if value == 0 {
		delete(b.draft.MenuPortions, menuID)
		delete(b.draft.MenuDishes, menuID)
	} else {
		b.draft.MenuPortions[menuID] = value
	}
	return prev != value
}

// TotalPrice is recomputed from the current portions on every call.
func (b *Builder) TotalPrice() catalog.Money {
	total := decimal.Zero
	for _, m := range b.menus {
		if p := b.draft.MenuPortions[m.ID]; p > 0 {
			total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(p))))
		}
	}
	return catalog.NewMoney(total)
}

func (b *Builder) TotalPortions() int {
	total := 0
	for _, m := range b.menus {
		total += b.draft.MenuPortions[m.ID]
	}
	return total
}

// ActiveMenus returns the menus with portions > 0 in catalog order.
func (b *Builder) ActiveMenus() []catalog.Menu {
	out := []catalog.Menu{}
	for _, m := range b.menus {
		if b.draft.MenuPortions[m.ID] > 0 {
			out = append(out, m)
		}
	}
	return out
}

func (b *Builder) CanChooseDishes() bool {
	return !b.frozen() && b.phase == PhaseQuantities && b.TotalPortions() > 0
}

// StartDishSelection moves to the first active menu.
func (b *Builder) StartDishSelection() bool {
	if !b.CanChooseDishes() {
		return false
	}
	b.phase = PhaseDishSelection
	b.current = 0
	b.resetView()
	return true
}

// --------------------------------------------------
// Dish selection
// --------------------------------------------------

func (b *Builder) resetView() {
	b.filter = GroupAll
	b.expanded = map[Group]bool{}
}

// CurrentIndex is the pointer into ActiveMenus during dish selection.
func (b *Builder) CurrentIndex() int {
	return b.current
}

// CurrentMenu is the active menu being filled, only during dish selection.
func (b *Builder) CurrentMenu() (catalog.Menu, bool) {
	if b.phase != PhaseDishSelection {
		return catalog.Menu{}, false
	}
	active := b.ActiveMenus()
	if b.current < 0 || b.current >= len(active) {
		return catalog.Menu{}, false
	}
	return active[b.current], true
}

func (b *Builder) SelectedCount(menuID string) int {
	return len(b.draft.MenuDishes[menuID])
}

func (b *Builder) IsSelected(menuID, dishID string) bool {
	_, ok := b.draft.MenuDishes[menuID][dishID]
	return ok
}

// SelectedDishIDs lists a menu's selection in the menu's dish order.
func (b *Builder) SelectedDishIDs(menuID string) []string {
	m, ok := b.menu(menuID)
	if !ok {
		return []string{}
	}
	out := []string{}
	for _, d := range m.Dishes {
		if b.IsSelected(menuID, d.ID) {
			out = append(out, d.ID)
		}
	}
	return out
}

// ToggleDish removes a selected dish, or adds it while the menu is under
// its quota. Adding past the quota leaves the selection unchanged.
func (b *Builder) ToggleDish(menuID, dishID string) bool {
	if b.frozen() || b.phase != PhaseDishSelection {
		return false
	}
	m, ok := b.menu(menuID)
	if !ok || b.draft.MenuPortions[menuID] <= 0 {
		return false
	}
	if _, ok := b.dishIndex[menuID][dishID]; !ok {
		return false
	}

	selected := b.draft.MenuDishes[menuID]
	if _, on := selected[dishID]; on {
		delete(selected, dishID)
		return true
	}
	if len(selected) >= m.DishCount {
		return false
	}
	if selected == nil {
		selected = map[string]struct{}{}
		b.draft.MenuDishes[menuID] = selected
	}
	selected[dishID] = struct{}{}
	return true
}

// CanAdvance reports whether the current menu has exactly its quota.
func (b *Builder) CanAdvance() bool {
	if b.frozen() {
		return false
	}
	m, ok := b.CurrentMenu()
	if !ok {
		return false
	}
	return b.SelectedCount(m.ID) == m.DishCount
}

// GoToNextMenu advances to the next active menu, or to checkout after the
// last one. It does nothing until the current menu's quota is met.
func (b *Builder) GoToNextMenu() bool {
	if !b.CanAdvance() {
		return false
	}
	if b.current >= len(b.ActiveMenus())-1 {
		b.phase = PhaseCheckout
		b.resetView()
		return true
	}
	b.current++
	b.resetView()
	return true
}

// GoToPrevMenu steps back one menu, or to quantities from the first one.
// Selections are kept.
func (b *Builder) GoToPrevMenu() bool {
	if b.frozen() || b.phase != PhaseDishSelection {
		return false
	}
	if b.current > 0 {
		b.current--
	} else {
		b.phase = PhaseQuantities
		b.current = 0
	}
	b.resetView()
	return true
}

// BackToDishes returns from checkout to the last active menu.
func (b *Builder) BackToDishes() bool {
	if b.frozen() || b.phase != PhaseCheckout {
		return false
	}
	b.phase = PhaseDishSelection
	b.current = len(b.ActiveMenus()) - 1
	b.resetView()
	return true
}

// Groups partitions the current menu's dishes.
func (b *Builder) Groups() []DishGroup {
	m, ok := b.CurrentMenu()
	if !ok {
		return []DishGroup{}
	}
	return Partition(m.Dishes)
}

// VisibleGroups applies the active filter to Groups.
func (b *Builder) VisibleGroups() []DishGroup {
	groups := b.Groups()
	if b.filter == GroupAll {
		return groups
	}
	for _, g := range groups {
		if g.Group == b.filter {
			return []DishGroup{g}
		}
	}
	return []DishGroup{}
}

func (b *Builder) Filter() Group {
	return b.filter
}

// SetFilter shows one group, or all with GroupAll. Groups the current menu
// does not have are not valid filters.
func (b *Builder) SetFilter(g Group) bool {
	if b.phase != PhaseDishSelection || b.frozen() {
		return false
	}
	if g != GroupAll && !b.hasGroup(g) {
		return false
	}
	changed := b.filter != g
	b.filter = g
	return changed
}

func (b *Builder) Expanded(g Group) bool {
	return b.expanded[g]
}

func (b *Builder) ToggleExpanded(g Group) bool {
	if b.phase != PhaseDishSelection || b.frozen() || !b.hasGroup(g) {
		return false
	}
	b.expanded[g] = !b.expanded[g]
	return true
}

func (b *Builder) hasGroup(g Group) bool {
	for _, dg := range b.Groups() {
		if dg.Group == g {
			return true
		}
	}
	return false
}

// --------------------------------------------------
// Progress
// --------------------------------------------------

const (
	StatusComplete = "complete"
	StatusCurrent  = "current"
	StatusPending  = "pending"
)

type MenuProgress struct {
	MenuID   string `json:"menuId"`
	Name     string `json:"name"`
	Selected int    `json:"selected"`
	Required int    `json:"required"`
	Status   string `json:"status"`
}

type Progress struct {
	Selected int            `json:"selected"`
	Required int            `json:"required"`
	Menus    []MenuProgress `json:"menus"`
}

// Progress reports the current menu's count and a marker per active menu.
func (b *Builder) Progress() Progress {
	p := Progress{Menus: []MenuProgress{}}
	current, inSelection := b.CurrentMenu()
	if inSelection {
		p.Selected = b.SelectedCount(current.ID)
		p.Required = current.DishCount
	}

	for i, m := range b.ActiveMenus() {
		mp := MenuProgress{
			MenuID:   m.ID,
			Name:     m.Name,
			Selected: b.SelectedCount(m.ID),
			Required: m.DishCount,
		}
		switch {
		case inSelection && i == b.current:
			mp.Status = StatusCurrent
		case mp.Selected == mp.Required:
			mp.Status = StatusComplete
		default:
			mp.Status = StatusPending
		}
		p.Menus = append(p.Menus, mp)
	}
	return p
}
