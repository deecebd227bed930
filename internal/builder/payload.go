package builder

import (
	"encoding/json"
	"fmt"

	"catering/internal/catalog"

	"github.com/shopspring/decimal"
)

// OrderLine is one active menu in the submitted order.
type OrderLine struct {
	MenuID          string        `json:"menuId"`
	MenuName        string        `json:"menuName"`
	Portions        int           `json:"portions"`
	PricePerPortion catalog.Money `json:"pricePerPortion"`
	TotalPrice      catalog.Money `json:"totalPrice"`
	DishCount       int           `json:"dishCount"`
	SelectedDishIDs []string      `json:"selectedDishIds"`
}

// OrderPayload is the snapshot handed to checkout as the orderData field.
type OrderPayload struct {
	Orders        []OrderLine   `json:"orders"`
	TotalPrice    catalog.Money `json:"totalPrice"`
	TotalPortions int           `json:"totalPortions"`
}

// SummaryLine is a read-only checkout row.
type SummaryLine struct {
	MenuID          string        `json:"menuId"`
	MenuName        string        `json:"menuName"`
	Portions        int           `json:"portions"`
	PricePerPortion catalog.Money `json:"pricePerPortion"`
	Subtotal        catalog.Money `json:"subtotal"`
	DishNames       []string      `json:"dishNames"`
}

type Summary struct {
	Lines         []SummaryLine `json:"lines"`
	TotalPrice    catalog.Money `json:"totalPrice"`
	TotalPortions int           `json:"totalPortions"`
}

func lineTotal(price catalog.Money, portions int) catalog.Money {
	return catalog.NewMoney(price.Mul(decimal.NewFromInt(int64(portions))))
}

// Summary lists every active menu with its chosen dish names.
func (b *Builder) Summary() Summary {
	s := Summary{
		Lines:         []SummaryLine{},
		TotalPrice:    b.TotalPrice(),
		TotalPortions: b.TotalPortions(),
	}
	for _, m := range b.ActiveMenus() {
		portions := b.draft.MenuPortions[m.ID]
		line := SummaryLine{
			MenuID:          m.ID,
			MenuName:        m.Name,
			Portions:        portions,
			PricePerPortion: m.Price,
			Subtotal:        lineTotal(m.Price, portions),
			DishNames:       []string{},
		}
		for _, d := range m.Dishes {
			if b.IsSelected(m.ID, d.ID) {
				line.DishNames = append(line.DishNames, d.Name)
			}
		}
		s.Lines = append(s.Lines, line)
	}
	return s
}

// Payload builds the order snapshot, one line per active menu in catalog
// order.
func (b *Builder) Payload() OrderPayload {
	p := OrderPayload{Orders: []OrderLine{}}
	total := decimal.Zero
	for _, m := range b.ActiveMenus() {
		portions := b.draft.MenuPortions[m.ID]
		line := OrderLine{
			MenuID:          m.ID,
			MenuName:        m.Name,
			Portions:        portions,
			PricePerPortion: m.Price,
			TotalPrice:      lineTotal(m.Price, portions),
			DishCount:       m.DishCount,
			SelectedDishIDs: b.SelectedDishIDs(m.ID),
		}
		total = total.Add(line.TotalPrice.Decimal)
		p.TotalPortions += portions
		p.Orders = append(p.Orders, line)
	}
	p.TotalPrice = catalog.NewMoney(total)
	return p
}

// OrderData is the JSON encoding of Payload.
func (b *Builder) OrderData() (string, error) {
	raw, err := json.Marshal(b.Payload())
	if err != nil {
		return "", fmt.Errorf("encode order data: %w", err)
	}
	return string(raw), nil
}

// ParsePayload decodes an orderData field.
func ParsePayload(data string) (*OrderPayload, error) {
	var p OrderPayload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("decode order data: %w", err)
	}
	if p.Orders == nil {
		p.Orders = []OrderLine{}
	}
	return &p, nil
}
