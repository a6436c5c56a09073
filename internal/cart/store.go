// Package cart implements the locally persisted shopping-cart store.
//
// The in-memory line-item list is the source of truth for the running
// session; every mutation mirrors a full serialized snapshot into the
// durable slot. Persistence is best-effort: a failed write is logged
// and the in-memory change stands.
package cart

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/greenbasket/storefront/internal/entities"
)

// SlotStore is the durable byte slot the cart mirrors itself into.
// Implemented by cartslots.Repository.
type SlotStore interface {
	Load() ([]byte, error)
	Save(payload []byte) error
}

// Store holds the ordered cart line-items. Mutations are serialized
// by a mutex so the merge-or-append decision always sees the result
// of the previous mutation.
type Store struct {
	mu    sync.Mutex
	slot  SlotStore
	items []entities.CartLineItem
}

// NewStore creates the cart store and loads any previously persisted
// list. Absent or malformed persisted content yields an empty cart;
// corrupt state must never fail startup.
func NewStore(slot SlotStore) *Store {
	s := &Store{slot: slot}

	payload, err := slot.Load()
	if err != nil {
		log.Printf("Cart: starting empty (no persisted cart: %v)", err)
		return s
	}

	if err := json.Unmarshal(payload, &s.items); err != nil {
		log.Printf("Cart: discarding malformed persisted cart: %v", err)
		s.items = nil
	}

	return s
}

// Add puts a product in the cart. A second add for the same product
// merges by summing quantities; the snapshot fields of the existing
// line are left untouched (the price is not re-synced).
func (s *Store) Add(product entities.Product, quantity int) {
	s.add(product, quantity, false, nil)
}

// AddCustom adds a free-form item that did not come through the
// normal catalog flow. Customizations are stored opaquely.
func (s *Store) AddCustom(product entities.Product, quantity int, customizations json.RawMessage) {
	s.add(product, quantity, true, customizations)
}

func (s *Store) add(product entities.Product, quantity int, isCustom bool, customizations json.RawMessage) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			s.persist()
			return
		}
	}

	unitType := product.Unit
	if isCustom {
		unitType = entities.UnitTypeList
	}

	s.items = append(s.items, entities.CartLineItem{
		ProductID:      product.ID,
		ProductName:    product.Name,
		Quantity:       quantity,
		UnitType:       unitType,
		UnitPrice:      product.UnitPrice(),
		BasePrice:      product.BasePrice,
		DiscountPrice:  product.DiscountPrice,
		CategoryName:   product.CategoryName,
		Image:          product.Image,
		IsCustom:       isCustom,
		Customizations: customizations,
	})
	s.persist()
}

// UpdateQuantity sets an item's quantity to an absolute value. A
// quantity of zero or less removes the item. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Remove deletes the line-item with the given product id, if present.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
}

// Items returns a copy of the line-items in insertion order.
func (s *Store) Items() []entities.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]entities.CartLineItem, len(s.items))
	copy(items, s.items)
	return items
}

// Total returns the sum of unit price times quantity over all items,
// recomputed on every call.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, item := range s.items {
		total += item.Subtotal()
	}
	return total
}

// Count returns the sum of quantities over all items.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persist writes the full serialized list to the durable slot.
// Callers must hold the mutex. Failures are logged, never raised: the
// in-memory list remains authoritative for the session.
func (s *Store) persist() {
	payload, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("Cart: failed to serialize cart: %v", err)
		return
	}
	if err := s.slot.Save(payload); err != nil {
		log.Printf("Cart: failed to persist cart: %v", err)
	}
}
