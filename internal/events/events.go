package events

import (
	"time"
)

// OrderPlacedEvent is published after an order and its stock decrement have
// committed. Consumers (analytics, seller notifications) get the denormalized
// product fields so they never have to read the catalog back.
type OrderPlacedEvent struct {
	EventID        string    `json:"event_id"`
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id"`
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Quantity       int       `json:"quantity"`
	UnitPrice      float64   `json:"unit_price"`
	RemainingStock int       `json:"remaining_stock"`
	Timestamp      time.Time `json:"timestamp"`
}
