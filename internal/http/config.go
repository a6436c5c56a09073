package http

import (
	"github.com/greenbasket/storefront/internal/auth"
	"github.com/greenbasket/storefront/internal/database"
)

// RouterConfig holds all dependencies for the HTTP router.
type RouterConfig struct {
	Cart     CartStore
	Wishlist WishlistStore
	Checkout CheckoutService
	Account  AccountClient

	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
	AllowedOrigins []string
	LoginURL       string

	Database *database.Database
	Version  string
}
