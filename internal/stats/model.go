package stats

import (
	"time"

	"catering/internal/catalog"
	"catering/internal/orders"
)

// Snapshot aggregates the orders placed in [From, To).
type Snapshot struct {
	From         time.Time      `json:"from"`
	To           time.Time      `json:"to"`
	Orders       int            `json:"orders"`
	ByStatus     map[string]int `json:"byStatus"`
	Revenue      catalog.Money  `json:"revenue"`
	AverageOrder catalog.Money  `json:"averageOrder"`
	MedianOrder  catalog.Money  `json:"medianOrder"`
	Portions     int            `json:"portions"`
	TopMenus     []MenuCount    `json:"topMenus"`
}

type MenuCount struct {
	MenuID   string `json:"menuId"`
	MenuName string `json:"menuName"`
	Orders   int    `json:"orders"`
	Portions int    `json:"portions"`
}

// Sample is the part of an order the dashboard aggregates.
type Sample struct {
	Status   string
	Total    catalog.Money
	Portions int
	Lines    []orders.Line
}
