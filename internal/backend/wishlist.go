package backend

import (
	"context"
	"net/url"

	"github.com/greenbasket/storefront/internal/entities"
)

const wishlistCollection = "wishlist_entries"

// WishlistClient exposes the wishlist_entries collection. It implements
// the EntryStore interface defined in internal/wishlist/store.go.
type WishlistClient struct {
	client *Client
}

func NewWishlistClient(client *Client) *WishlistClient {
	return &WishlistClient{client: client}
}

// FilterByEmail returns every wishlist entry belonging to the user.
func (w *WishlistClient) FilterByEmail(ctx context.Context, email string) ([]entities.WishlistEntry, error) {
	filters := url.Values{}
	filters.Set("user_email", email)

	var entries []entities.WishlistEntry
	if err := w.client.listDocuments(ctx, wishlistCollection, filters, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Create stores a new entry and returns it with its assigned id.
func (w *WishlistClient) Create(ctx context.Context, entry entities.WishlistEntry) (*entities.WishlistEntry, error) {
	var created entities.WishlistEntry
	if err := w.client.createDocument(ctx, wishlistCollection, entry, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete removes an entry by its document id.
func (w *WishlistClient) Delete(ctx context.Context, id string) error {
	return w.client.deleteDocument(ctx, wishlistCollection, id)
}
