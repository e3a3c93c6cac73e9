// Package queue defines the message payloads exchanged over the broker
// and the background consumer for them.
package queue

// OrderCreatedEvent is published when an order is accepted.  It
// carries enough for downstream consumers (notifications, a sales
// dashboard) to act without querying the store.
type OrderCreatedEvent struct {
	OrderID       int64  `json:"order_id"`
	CarID         int64  `json:"car_id"`
	CarName       string `json:"car_name"`
	CarPrice      int64  `json:"car_price"`
	UserID        int64  `json:"user_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Status        string `json:"status"`
	OrderDate     string `json:"order_date"`
}
