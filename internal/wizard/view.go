package wizard

import (
	"catering/internal/builder"
	"catering/internal/catalog"

	"github.com/shopspring/decimal"
)

type MenuView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       catalog.Money `json:"price"`
	DishCount   int           `json:"dishCount"`
	Portions    int           `json:"portions"`
	Subtotal    catalog.Money `json:"subtotal"`
}

type DishView struct {
	catalog.Dish
	Selected bool `json:"selected"`
}

type GroupView struct {
	Group    builder.Group `json:"group"`
	Expanded bool          `json:"expanded"`
	Dishes   []DishView    `json:"dishes"`
}

type CurrentView struct {
	MenuID     string          `json:"menuId"`
	Name       string          `json:"name"`
	DishCount  int             `json:"dishCount"`
	Index      int             `json:"index"`
	Selected   int             `json:"selected"`
	CanAdvance bool            `json:"canAdvance"`
	Filter     builder.Group   `json:"filter"`
	Groups     []GroupView     `json:"groups"`
	Available  []builder.Group `json:"availableGroups"`
}

// View is the whole wizard state as the storefront renders it.
type View struct {
	ID              string           `json:"id"`
	Phase           builder.Phase    `json:"phase"`
	Menus           []MenuView       `json:"menus"`
	ActiveMenuIDs   []string         `json:"activeMenuIds"`
	TotalPrice      catalog.Money    `json:"totalPrice"`
	TotalPortions   int              `json:"totalPortions"`
	CanChooseDishes bool             `json:"canChooseDishes"`
	Current         *CurrentView     `json:"current,omitempty"`
	Progress        builder.Progress `json:"progress"`
	Summary         *builder.Summary `json:"summary,omitempty"`
	Submitting      bool             `json:"submitting"`
	Completed       bool             `json:"completed"`
}

func render(id string, b *builder.Builder) View {
	v := View{
		ID:              id,
		Phase:           b.Phase(),
		Menus:           make([]MenuView, 0, len(b.Menus())),
		ActiveMenuIDs:   []string{},
		TotalPrice:      b.TotalPrice(),
		TotalPortions:   b.TotalPortions(),
		CanChooseDishes: b.CanChooseDishes(),
		Progress:        b.Progress(),
		Submitting:      b.Submitting(),
		Completed:       b.Completed(),
	}

	for _, m := range b.Menus() {
		portions := b.Portions(m.ID)
		v.Menus = append(v.Menus, MenuView{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
			Price:       m.Price,
			DishCount:   m.DishCount,
			Portions:    portions,
			Subtotal:    catalog.NewMoney(m.Price.Mul(decimal.NewFromInt(int64(portions)))),
		})
	}
	for _, m := range b.ActiveMenus() {
		v.ActiveMenuIDs = append(v.ActiveMenuIDs, m.ID)
	}

	if m, ok := b.CurrentMenu(); ok {
		cur := &CurrentView{
			MenuID:     m.ID,
			Name:       m.Name,
			DishCount:  m.DishCount,
			Index:      b.CurrentIndex(),
			Selected:   b.SelectedCount(m.ID),
			CanAdvance: b.CanAdvance(),
			Filter:     b.Filter(),
			Groups:     []GroupView{},
			Available:  []builder.Group{},
		}
		for _, g := range b.Groups() {
			cur.Available = append(cur.Available, g.Group)
		}
		for _, g := range b.VisibleGroups() {
			gv := GroupView{Group: g.Group, Expanded: b.Expanded(g.Group), Dishes: make([]DishView, 0, len(g.Dishes))}
			for _, d := range g.Dishes {
				gv.Dishes = append(gv.Dishes, DishView{Dish: d, Selected: b.IsSelected(m.ID, d.ID)})
			}
			cur.Groups = append(cur.Groups, gv)
		}
		v.Current = cur
	}

	if b.Phase() == builder.PhaseCheckout {
		s := b.Summary()
		v.Summary = &s
	}
	return v
}
