package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/greenbasket/storefront/internal/backend"
	"github.com/greenbasket/storefront/internal/cart"
	"github.com/greenbasket/storefront/internal/checkout"
	"github.com/greenbasket/storefront/internal/database/cartslots"
	"github.com/greenbasket/storefront/internal/http"
	"github.com/greenbasket/storefront/internal/syncengine"
	"github.com/greenbasket/storefront/internal/tasks"
	"github.com/greenbasket/storefront/internal/wishlist"
)

// =============================================================================
// Persistence
// =============================================================================

// SlotStore implementations
var _ cart.SlotStore = (*cartslots.Repository)(nil)

// Query cache implementations
var _ syncengine.Cache = (*syncengine.MemoryCache)(nil)
var _ syncengine.Cache = (*syncengine.RedisCache)(nil)

// =============================================================================
// Backend clients
// =============================================================================

// EntryStore implementations
var _ wishlist.EntryStore = (*backend.WishlistClient)(nil)

// AuthOracle implementations
var _ wishlist.AuthOracle = (*backend.AuthClient)(nil)

// OrderStore implementations
var _ tasks.OrderStore = (*backend.OrderClient)(nil)

// =============================================================================
// HTTP facade
// =============================================================================

var _ http.CartStore = (*cart.Store)(nil)
var _ http.WishlistStore = (*wishlist.Store)(nil)
var _ http.CheckoutService = (*checkout.Service)(nil)
var _ http.AccountClient = (*backend.Client)(nil)

// =============================================================================
// Checkout collaborators
// =============================================================================

var _ checkout.Cart = (*cart.Store)(nil)
var _ checkout.UserSource = (*wishlist.Store)(nil)
var _ checkout.OrderSubmitter = (*tasks.Submitter)(nil)
