package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderItem struct {
	ProductID       string  `json:"product_id"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"price_at_purchase"`
}

type OrderRequest struct {
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
}

// Total is the exact sum of quantity * price_at_purchase over all items.
func (r *OrderRequest) Total() float64 {
	var total float64
	for _, item := range r.Items {
		total += float64(item.Quantity) * item.PriceAtPurchase
	}

	return total
}

func (r *OrderRequest) Payload() OrderPayload {
	return OrderPayload{
		UserID: r.UserID,
		Items:  r.Items,
		Total:  r.Total(),
	}
}

type OrderPayload struct {
	UserID string      `json:"user_id"`
	Items  []OrderItem `json:"items"`
	Total  float64     `json:"total"`
}

// CreatedOrder is the order function's response, kept byte for byte.
type CreatedOrder struct {
	OrderID string
	Raw     []byte
}

type EventType string

const (
	OrderCreated EventType = "ORDER_CREATED"
)

type OrderCreatedEvent struct {
	EventUUID uuid.UUID `json:"event_uuid"`
	EventType EventType `json:"event_type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     float64   `json:"total"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *OrderCreatedEvent) UUID() string {
	return e.EventUUID.String()
}
