package domain

import (
	"time"
)

// Order is an immutable record of a quantity of one product purchased by one
// user. ProductName and UnitPrice are denormalized at placement time so the
// history survives later product edits.
type Order struct {
	OrderID     string    `dynamodbav:"order_id"     json:"order_id"`
	UserID      string    `dynamodbav:"user_id"      json:"user_id"`
	ProductID   string    `dynamodbav:"product_id"   json:"product_id"`
	ProductName string    `dynamodbav:"product_name" json:"product_name"`
	UnitPrice   float64   `dynamodbav:"unit_price"   json:"unit_price"`
	Quantity    int       `dynamodbav:"quantity"     json:"quantity"`
	CreatedAt   time.Time `dynamodbav:"created_at"   json:"created_at"`
}

type PlaceOrderRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"   binding:"required,min=1"`
}

// PlaceOrderResult mirrors the stock movement alongside the created order.
// PreviousStock is filled even when placement fails on insufficient stock so
// callers can report what was available.
type PlaceOrderResult struct {
	Order         *Order `json:"order,omitempty"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
}
