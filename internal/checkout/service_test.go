package checkout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenbasket/storefront/internal/entities"
	"github.com/greenbasket/storefront/internal/wishlist"
)

type fakeCart struct {
	items   []entities.CartLineItem
	cleared bool
}

func (f *fakeCart) Items() []entities.CartLineItem { return f.items }

func (f *fakeCart) Total() float64 {
	var total float64
	for _, item := range f.items {
		total += item.Subtotal()
	}
	return total
}

func (f *fakeCart) Clear() {
	f.cleared = true
	f.items = nil
}

type fakeUsers struct {
	user *entities.User
}

func (f *fakeUsers) CurrentUser() *entities.User { return f.user }

type fakeSubmitter struct {
	orders []entities.Order
	err    error
}

func (f *fakeSubmitter) EnqueueOrder(order entities.Order) error {
	if f.err != nil {
		return f.err
	}
	f.orders = append(f.orders, order)
	return nil
}

func TestService_PlaceOrder(t *testing.T) {
	cart := &fakeCart{items: []entities.CartLineItem{
		{ProductID: "p1", ProductName: "Oat Milk", Quantity: 2, UnitPrice: 120},
		{ProductID: "p2", ProductName: "Rye Bread", Quantity: 1, UnitPrice: 80},
	}}
	submitter := &fakeSubmitter{}
	service := NewService(cart, &fakeUsers{user: &entities.User{Email: "a@b.test"}}, submitter)

	order, err := service.PlaceOrder()

	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "a@b.test", order.UserEmail)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, 320.0, order.Subtotal)
	assert.False(t, order.PlacedAt.IsZero())

	require.Len(t, submitter.orders, 1)
	assert.Equal(t, order.ID, submitter.orders[0].ID)
	assert.True(t, cart.cleared)
}

func TestService_PlaceOrder_UniqueIDs(t *testing.T) {
	submitter := &fakeSubmitter{}
	users := &fakeUsers{user: &entities.User{Email: "a@b.test"}}

	cart1 := &fakeCart{items: []entities.CartLineItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}}
	order1, err := NewService(cart1, users, submitter).PlaceOrder()
	require.NoError(t, err)

	cart2 := &fakeCart{items: []entities.CartLineItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}}
	order2, err := NewService(cart2, users, submitter).PlaceOrder()
	require.NoError(t, err)

	assert.NotEqual(t, order1.ID, order2.ID)
}

func TestService_PlaceOrder_SignedOut(t *testing.T) {
	cart := &fakeCart{items: []entities.CartLineItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}}
	submitter := &fakeSubmitter{}
	service := NewService(cart, &fakeUsers{}, submitter)

	_, err := service.PlaceOrder()

	assert.ErrorIs(t, err, wishlist.ErrSignInRequired)
	assert.Empty(t, submitter.orders)
	assert.False(t, cart.cleared)
}

func TestService_PlaceOrder_EmptyCart(t *testing.T) {
	service := NewService(&fakeCart{}, &fakeUsers{user: &entities.User{Email: "a@b.test"}}, &fakeSubmitter{})

	_, err := service.PlaceOrder()

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_PlaceOrder_EnqueueFailureKeepsCart(t *testing.T) {
	cart := &fakeCart{items: []entities.CartLineItem{{ProductID: "p1", Quantity: 1, UnitPrice: 10}}}
	submitter := &fakeSubmitter{err: errors.New("queue unavailable")}
	service := NewService(cart, &fakeUsers{user: &entities.User{Email: "a@b.test"}}, submitter)

	_, err := service.PlaceOrder()

	assert.Error(t, err)
	assert.False(t, cart.cleared)
	assert.Len(t, cart.items, 1)
}
