package orders

import (
	"time"

	"catering/internal/catalog"
)

const (
	StatusNew       = "NEW"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

var transitions = map[string][]string{
	StatusNew:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func ValidStatus(s string) bool {
	switch s {
	case StatusNew, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// LineDish is a chosen dish as it was named when the order was placed.
type LineDish struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Line struct {
	MenuID          string        `json:"menuId"`
	MenuName        string        `json:"menuName"`
	Portions        int           `json:"portions"`
	PricePerPortion catalog.Money `json:"pricePerPortion"`
	TotalPrice      catalog.Money `json:"totalPrice"`
	DishCount       int           `json:"dishCount"`
	Dishes          []LineDish    `json:"dishes"`
}

type Order struct {
	ID            string        `json:"id"`
	ClientName    string        `json:"clientName"`
	ClientPhone   string        `json:"clientPhone"`
	ClientEmail   string        `json:"clientEmail"`
	Address       string        `json:"address"`
	EventDate     time.Time     `json:"eventDate"`
	Message       string        `json:"message"`
	Locale        string        `json:"locale"`
	Lines         []Line        `json:"lines"`
	TotalPrice    catalog.Money `json:"totalPrice"`
	TotalPortions int           `json:"totalPortions"`
	Status        string        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

type ListFilter struct {
	Status string
	Limit  int
	Offset int
}
