package http

import (
	"context"
	"encoding/json"

	"github.com/greenbasket/storefront/internal/backend"
	"github.com/greenbasket/storefront/internal/entities"
)

// CartStore is the locally persisted cart the handlers expose.
type CartStore interface {
	Add(product entities.Product, quantity int)
	AddCustom(product entities.Product, quantity int, customizations json.RawMessage)
	UpdateQuantity(productID string, quantity int)
	Remove(productID string)
	Clear()
	Items() []entities.CartLineItem
	Total() float64
	Count() int
}

// WishlistStore is the server-synchronized wishlist the handlers
// expose.
type WishlistStore interface {
	Entries(ctx context.Context) []entities.WishlistEntry
	IsWishlisted(ctx context.Context, productID string) bool
	Count(ctx context.Context) int
	Toggle(ctx context.Context, product entities.Product) error
	RefreshUser(ctx context.Context)
	CurrentUser() *entities.User
}

// CheckoutService places orders from the cart.
type CheckoutService interface {
	PlaceOrder() (*entities.Order, error)
}

// AccountClient proxies login and logout to the backend account API.
type AccountClient interface {
	Login(ctx context.Context, email, password string) (*backend.Session, error)
	Logout(ctx context.Context) error
	SetSessionToken(token string)
	SessionToken() string
}
