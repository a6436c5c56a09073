// Package wishlist implements the server-synchronized wishlist store.
// Unlike the cart, the wishlist is never persisted locally: the backend
// collection is the source of truth and every view is read through the
// sync engine's query cache.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/greenbasket/storefront/internal/entities"
	"github.com/greenbasket/storefront/internal/syncengine"
)

// ErrSignInRequired is returned by members-only operations when no user
// is signed in. The caller has already been pointed at the login page.
var ErrSignInRequired = errors.New("sign in required")

// EntryStore is the remote wishlist collection.
type EntryStore interface {
	FilterByEmail(ctx context.Context, email string) ([]entities.WishlistEntry, error)
	Create(ctx context.Context, entry entities.WishlistEntry) (*entities.WishlistEntry, error)
	Delete(ctx context.Context, id string) error
}

// AuthOracle answers who is signed in and where to send visitors who
// are not.
type AuthOracle interface {
	CurrentUser(ctx context.Context) (*entities.User, error)
	RedirectToLogin()
}

// Store is the wishlist view for the resolved user. The user is looked
// up once at construction; RefreshUser re-resolves it after the auth
// passthrough changes the session.
type Store struct {
	engine  *syncengine.Engine
	entries EntryStore
	oracle  AuthOracle

	mu   sync.RWMutex
	user *entities.User
}

// NewStore resolves the current user and, when one is signed in,
// registers the wishlist query with the sync engine. A failed lookup is
// logged and treated as signed out.
func NewStore(ctx context.Context, engine *syncengine.Engine, entries EntryStore, oracle AuthOracle) *Store {
	s := &Store{
		engine:  engine,
		entries: entries,
		oracle:  oracle,
	}
	s.resolveUser(ctx)
	return s
}

func (s *Store) resolveUser(ctx context.Context) {
	user, err := s.oracle.CurrentUser(ctx)
	if err != nil {
		log.Printf("Wishlist: failed to resolve current user, treating as signed out: %v", err)
		user = nil
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if user == nil {
		return
	}

	email := user.Email
	s.engine.Register(queryKey(email), func(ctx context.Context) ([]byte, error) {
		list, err := s.entries.FilterByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return json.Marshal(list)
	})
}

// RefreshUser re-resolves the signed-in user after a login or logout.
// The previous user's query is dropped from the engine.
func (s *Store) RefreshUser(ctx context.Context) {
	s.mu.RLock()
	previous := s.user
	s.mu.RUnlock()

	if previous != nil {
		s.engine.Deregister(ctx, queryKey(previous.Email))
	}
	s.resolveUser(ctx)
}

// CurrentUser returns the user this store was resolved for, or nil when
// signed out.
func (s *Store) CurrentUser() *entities.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func queryKey(email string) string {
	return "wishlist:" + email
}

// Entries returns the user's wishlist. Signed-out visitors always see
// an empty list. Fetch failures are logged and rendered as empty rather
// than breaking the page.
func (s *Store) Entries(ctx context.Context) []entities.WishlistEntry {
	user := s.CurrentUser()
	if user == nil {
		return nil
	}

	payload, err := s.engine.Get(ctx, queryKey(user.Email))
	if err != nil {
		log.Printf("Wishlist: failed to load entries for %s: %v", user.Email, err)
		return nil
	}

	var entries []entities.WishlistEntry
	if err := json.Unmarshal(payload, &entries); err != nil {
		log.Printf("Wishlist: malformed cached entries for %s: %v", user.Email, err)
		return nil
	}
	return entries
}

// IsWishlisted reports whether the product appears in the user's
// wishlist.
func (s *Store) IsWishlisted(ctx context.Context, productID string) bool {
	for _, entry := range s.Entries(ctx) {
		if entry.ProductID == productID {
			return true
		}
	}
	return false
}

// Count returns the number of wishlist entries.
func (s *Store) Count(ctx context.Context) int {
	return len(s.Entries(ctx))
}

// Toggle adds the product to the wishlist, or removes it when an entry
// for it already exists. Signed-out visitors are pointed at the login
// page and get ErrSignInRequired. The cached view is refreshed from the
// server only after the remote mutation succeeds; nothing is patched
// locally.
func (s *Store) Toggle(ctx context.Context, product entities.Product) error {
	user := s.CurrentUser()
	if user == nil {
		s.oracle.RedirectToLogin()
		return ErrSignInRequired
	}

	var existing *entities.WishlistEntry
	for _, entry := range s.Entries(ctx) {
		if entry.ProductID == product.ID {
			e := entry
			existing = &e
			break
		}
	}

	return s.engine.Mutate(ctx, queryKey(user.Email), func(ctx context.Context) error {
		if existing != nil {
			return s.entries.Delete(ctx, existing.ID)
		}
		_, err := s.entries.Create(ctx, entities.NewWishlistEntry(user.Email, product))
		return err
	})
}

// Revalidate drops the cached wishlist and refetches it from the
// server. The scheduler calls this periodically so long-lived sessions
// pick up changes made from other devices.
func (s *Store) Revalidate(ctx context.Context) {
	user := s.CurrentUser()
	if user == nil {
		return
	}
	s.engine.Invalidate(ctx, queryKey(user.Email))
}
