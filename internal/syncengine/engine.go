// Package syncengine is the query/mutation caching layer the wishlist
// store reads through. It implements the three-part contract the
// commerce layer requires from its remote sync engine: query by key,
// mutate with invalidate, and automatic refetch on invalidation.
package syncengine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// FetchFunc produces the authoritative payload for a query key.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Engine caches query results by key and keeps them consistent with
// remote mutations via invalidate-then-refetch. It never patches a
// cached payload in place.
type Engine struct {
	cache Cache
	ttl   time.Duration

	mu       sync.RWMutex
	fetchers map[string]FetchFunc
}

func New(cache Cache, ttl time.Duration) *Engine {
	return &Engine{
		cache:    cache,
		ttl:      ttl,
		fetchers: make(map[string]FetchFunc),
	}
}

// Register binds a query key to its fetch function. Re-registering a
// key replaces the previous fetcher (used when the signed-in user
// changes).
func (e *Engine) Register(key string, fetch FetchFunc) {
	e.mu.Lock()
	e.fetchers[key] = fetch
	e.mu.Unlock()
}

// Deregister removes a query key and drops its cached payload.
func (e *Engine) Deregister(ctx context.Context, key string) {
	e.mu.Lock()
	delete(e.fetchers, key)
	e.mu.Unlock()

	if err := e.cache.Delete(ctx, key); err != nil {
		log.Printf("Sync engine: failed to drop cache for %q: %v", key, err)
	}
}

func (e *Engine) fetcher(key string) (FetchFunc, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fetch, ok := e.fetchers[key]
	return fetch, ok
}

// Get returns the cached payload for the key, fetching and caching it
// on a miss. Cache I/O failures are treated as misses; only fetch
// failures are returned to the caller.
func (e *Engine) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := e.cache.Get(ctx, key)
	if err == nil {
		return value, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		log.Printf("Sync engine: cache read for %q failed, refetching: %v", key, err)
	}

	return e.refetch(ctx, key)
}

// Invalidate drops the cached payload for the key and, when a fetcher
// is registered, refetches immediately so the next read reflects
// server state. A failed refetch leaves the key empty; the next Get
// fetches again.
func (e *Engine) Invalidate(ctx context.Context, key string) {
	if err := e.cache.Delete(ctx, key); err != nil {
		log.Printf("Sync engine: failed to invalidate %q: %v", key, err)
	}

	if _, ok := e.fetcher(key); !ok {
		return
	}
	if _, err := e.refetch(ctx, key); err != nil {
		log.Printf("Sync engine: refetch after invalidating %q failed: %v", key, err)
	}
}

// Mutate runs a remote mutation and, only when it succeeds,
// invalidates the key. A failed mutation leaves the cached view
// untouched.
func (e *Engine) Mutate(ctx context.Context, key string, mutation func(ctx context.Context) error) error {
	if err := mutation(ctx); err != nil {
		return err
	}
	e.Invalidate(ctx, key)
	return nil
}

func (e *Engine) refetch(ctx context.Context, key string) ([]byte, error) {
	fetch, ok := e.fetcher(key)
	if !ok {
		return nil, fmt.Errorf("syncengine: no fetcher registered for %q", key)
	}

	value, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Set(ctx, key, value, e.ttl); err != nil {
		log.Printf("Sync engine: failed to cache %q: %v", key, err)
	}
	return value, nil
}
