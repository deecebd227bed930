package notify

import (
	"context"
	"time"

	"catering/internal/catalog"
)

// OrderPlaced is everything the kitchen needs to know about a new order.
// It travels as JSON when notifications are queued.
type OrderPlaced struct {
	OrderID       string        `json:"orderId"`
	ClientName    string        `json:"clientName"`
	ClientPhone   string        `json:"clientPhone"`
	ClientEmail   string        `json:"clientEmail"`
	Address       string        `json:"address"`
	EventDate     time.Time     `json:"eventDate"`
	Message       string        `json:"message,omitempty"`
	Locale        string        `json:"locale"`
	Lines         []Line        `json:"lines"`
	TotalPrice    catalog.Money `json:"totalPrice"`
	TotalPortions int           `json:"totalPortions"`
	PlacedAt      time.Time     `json:"placedAt"`
}

type Line struct {
	MenuName        string        `json:"menuName"`
	Portions        int           `json:"portions"`
	PricePerPortion catalog.Money `json:"pricePerPortion"`
	TotalPrice      catalog.Money `json:"totalPrice"`
	Dishes          []string      `json:"dishes"`
}

// Notifier delivers order notifications, inline or through a queue.
type Notifier interface {
	Notify(ctx context.Context, msg OrderPlaced) error
}
