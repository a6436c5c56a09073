// Package checkout turns the local cart into a submitted order.
// Submission is queued: the order is handed to the background task
// client and posted to the backend with retries, so a flaky connection
// at the checkout button does not lose the order.
package checkout

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/greenbasket/storefront/internal/entities"
	"github.com/greenbasket/storefront/internal/wishlist"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = errors.New("cart is empty")

// Cart is the local cart the order is built from.
type Cart interface {
	Items() []entities.CartLineItem
	Total() float64
	Clear()
}

// UserSource exposes the resolved signed-in user.
type UserSource interface {
	CurrentUser() *entities.User
}

// OrderSubmitter queues an order for background submission.
type OrderSubmitter interface {
	EnqueueOrder(order entities.Order) error
}

// Service places orders from the cart.
type Service struct {
	cart      Cart
	users     UserSource
	submitter OrderSubmitter
}

func NewService(cart Cart, users UserSource, submitter OrderSubmitter) *Service {
	return &Service{
		cart:      cart,
		users:     users,
		submitter: submitter,
	}
}

// PlaceOrder snapshots the cart into an order, queues it for
// submission and clears the cart. The order id is generated locally so
// a retried submission stays idempotent. The cart is cleared only
// after the order is safely queued.
func (s *Service) PlaceOrder() (*entities.Order, error) {
	user := s.users.CurrentUser()
	if user == nil {
		return nil, wishlist.ErrSignInRequired
	}

	items := s.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	order := entities.Order{
		ID:        uuid.NewString(),
		UserEmail: user.Email,
		Items:     items,
		Subtotal:  s.cart.Total(),
		PlacedAt:  time.Now().UTC(),
	}

	if err := s.submitter.EnqueueOrder(order); err != nil {
		return nil, err
	}

	s.cart.Clear()
	log.Printf("Checkout: queued order %s for %s (%d items)", order.ID, order.UserEmail, len(order.Items))
	return &order, nil
}
