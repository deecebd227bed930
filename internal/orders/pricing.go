package orders

import (
	"fmt"

	"catering/internal/builder"
	"catering/internal/catalog"
	"catering/internal/validation"

	"github.com/shopspring/decimal"
)

// priced is an order payload checked and re-priced against the live catalog.
type priced struct {
	lines         []Line
	totalPrice    catalog.Money
	totalPortions int
	dishIDs       []string
}

func invalidOrder(format string, args ...interface{}) error {
	return validation.New("orderData", fmt.Sprintf(format, args...))
}

// reprice validates every line of p against menus and recomputes totals
// from catalog prices. Client-side prices are ignored.
func reprice(p *builder.OrderPayload, menus []catalog.Menu) (*priced, error) {
	if len(p.Orders) == 0 {
		return nil, invalidOrder("order has no menus")
	}

	byID := make(map[string]catalog.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	out := &priced{lines: make([]Line, 0, len(p.Orders))}
	total := decimal.Zero
	seenMenus := map[string]bool{}

	for _, o := range p.Orders {
		menu, ok := byID[o.MenuID]
		if !ok {
			return nil, invalidOrder("menu %s is not available", o.MenuID)
		}
		if seenMenus[menu.ID] {
			return nil, invalidOrder("menu %s listed twice", menu.Name)
		}
		seenMenus[menu.ID] = true

		if o.Portions <= 0 {
			return nil, invalidOrder("menu %s needs at least one portion", menu.Name)
		}
		if o.Portions > builder.MaxPortions {
			return nil, invalidOrder("menu %s allows at most %d portions", menu.Name, builder.MaxPortions)
		}
		if len(o.SelectedDishIDs) != menu.DishCount {
			return nil, invalidOrder("menu %s needs exactly %d dishes", menu.Name, menu.DishCount)
		}

		inMenu := make(map[string]catalog.Dish, len(menu.Dishes))
		for _, d := range menu.Dishes {
			inMenu[d.ID] = d
		}
		chosen := map[string]bool{}
		dishes := make([]LineDish, 0, len(o.SelectedDishIDs))
		for _, id := range o.SelectedDishIDs {
			d, ok := inMenu[id]
			if !ok {
				return nil, invalidOrder("dish %s is not part of menu %s", id, menu.Name)
			}
			if chosen[id] {
				return nil, invalidOrder("dish %s chosen twice in menu %s", d.Name, menu.Name)
			}
			chosen[id] = true
			dishes = append(dishes, LineDish{ID: d.ID, Name: d.Name})
			out.dishIDs = append(out.dishIDs, d.ID)
		}

		lineTotal := menu.Price.Mul(decimal.NewFromInt(int64(o.Portions)))
		out.lines = append(out.lines, Line{
			MenuID:          menu.ID,
			MenuName:        menu.Name,
			Portions:        o.Portions,
			PricePerPortion: menu.Price,
			TotalPrice:      catalog.NewMoney(lineTotal),
			DishCount:       menu.DishCount,
			Dishes:          dishes,
		})
		total = total.Add(lineTotal)
		out.totalPortions += o.Portions
	}

	out.totalPrice = catalog.NewMoney(total)
	return out, nil
}

// applyNames overwrites dish names with a fresh lookup, keeping the catalog
// name for any id the lookup missed.
func (p *priced) applyNames(names map[string]string) {
	for i := range p.lines {
		for j, d := range p.lines[i].Dishes {
			if n, ok := names[d.ID]; ok && n != "" {
				p.lines[i].Dishes[j].Name = n
			}
		}
	}
}
