package entities

import "time"

// Order is the checkout snapshot submitted to the backend. The ID is
// generated locally and doubles as an idempotency key so a retried
// submission cannot create a second order.
type Order struct {
	ID        string         `json:"id"`
	UserEmail string         `json:"user_email"`
	Items     []CartLineItem `json:"items"`
	Subtotal  float64        `json:"subtotal"`
	PlacedAt  time.Time      `json:"placed_at"`
}
