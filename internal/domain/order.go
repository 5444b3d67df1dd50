package domain

import "time"

// Order is an append-only record of a submitted cart awaiting admin review.
// Numeric fields travel as text.
type Order struct {
	ID          uint64
	ClientName  string
	ClientPhone string
	Latitude    string
	Longitude   string
	Products    string
	Total       string
	Status      string
	CreatedAt   time.Time
}

// OrderProduct is one element of the JSON array stored in Order.Products.
type OrderProduct struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Weight   string  `json:"weight"`
}

const (
	OrderStatusPending = "pendiente"
)
