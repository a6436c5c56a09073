package backend

import (
	"context"

	"github.com/greenbasket/storefront/internal/entities"
)

const ordersCollection = "orders"

// OrderClient submits placed orders to the orders collection. It
// implements the OrderStore interface defined in
// internal/tasks/submit_order.go.
type OrderClient struct {
	client *Client
}

func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

// Submit stores the order. The order carries a locally generated id so
// retried submissions stay idempotent on the backend side.
func (o *OrderClient) Submit(ctx context.Context, order entities.Order) error {
	return o.client.createDocument(ctx, ordersCollection, order, nil)
}
