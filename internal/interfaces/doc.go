// Package interfaces documents the core abstractions used throughout the application.
//
// This package consolidates interface documentation to help readers understand
// extension points and how to implement new functionality.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - SlotStore: durable storage for the cart snapshot (internal/cart/store.go)
//   - Cache: query cache backends for the sync engine (internal/syncengine/cache.go)
//
// ## Remote Collection Interfaces
//
//   - EntryStore: the backend wishlist collection (internal/wishlist/store.go)
//   - AuthOracle: signed-in user resolution (internal/wishlist/store.go)
//   - OrderStore: order submission (internal/tasks/submit_order.go)
//
// ## HTTP Facade Interfaces
//
//   - CartStore, WishlistStore, CheckoutService, AccountClient
//     (internal/http/stores.go) - consumer-side views of the stores
//
// # Adding a New Cache Backend
//
// To add a new query cache (e.g., memcached):
//
//  1. Implement syncengine.Cache in internal/syncengine/
//
//     type MemcachedCache struct {
//         client *memcache.Client
//     }
//
//     func (c *MemcachedCache) Get(ctx context.Context, key string) ([]byte, error)
//     func (c *MemcachedCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
//     func (c *MemcachedCache) Delete(ctx context.Context, key string) error
//
//  2. Add a config.CacheBackend value and wire it in entrypoint.go
//
//  3. Add a compile-time check:
//
//     var _ syncengine.Cache = (*MemcachedCache)(nil)
//
// # Adding a New Slot
//
// To persist another locally owned snapshot (e.g., recently viewed
// products), add a key constant in internal/entities/slot.go and create
// a cartslots.Repository with that key; slots share one table.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// This pattern is used throughout the codebase. See checks.go for examples.
package interfaces
