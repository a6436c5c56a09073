package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/greenbasket/storefront/internal/entities"
)

// OrderStore posts a placed order to the backend.
type OrderStore interface {
	Submit(ctx context.Context, order entities.Order) error
}

// SubmitOrderTask posts one placed order to the backend. The order is
// embedded in the task payload, so the submission survives restarts
// even though the cart it came from has already been cleared.
type SubmitOrderTask struct {
	Order entities.Order `json:"order"`
}

// Config returns the queue configuration for order submissions.
func (t SubmitOrderTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "submit_order",
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     1 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// SubmitOrderProcessor creates the processor for SubmitOrderTask.
func SubmitOrderProcessor(orders OrderStore) backlite.QueueProcessor[SubmitOrderTask] {
	return func(ctx context.Context, task SubmitOrderTask) error {
		if orders == nil {
			return fmt.Errorf("order store not configured")
		}

		if err := orders.Submit(ctx, task.Order); err != nil {
			return fmt.Errorf("submit order %s: %w", task.Order.ID, err)
		}

		log.Printf("[TASK] Submitted order %s for %s (%d items, subtotal %.2f)",
			task.Order.ID, task.Order.UserEmail, len(task.Order.Items), task.Order.Subtotal)
		return nil
	}
}

// NewSubmitOrderQueue creates the backlite queue for order submissions.
func NewSubmitOrderQueue(orders OrderStore) backlite.Queue {
	return backlite.NewQueue(SubmitOrderProcessor(orders))
}

// Submitter adapts the task client to the checkout service's
// OrderSubmitter interface.
type Submitter struct {
	client *Client
}

func NewSubmitter(client *Client) *Submitter {
	return &Submitter{client: client}
}

// EnqueueOrder queues the order for background submission.
func (s *Submitter) EnqueueOrder(order entities.Order) error {
	if _, err := s.client.Add(SubmitOrderTask{Order: order}).Save(); err != nil {
		return fmt.Errorf("failed to enqueue order %s: %w", order.ID, err)
	}
	return nil
}
