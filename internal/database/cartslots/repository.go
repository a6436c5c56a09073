// Package cartslots provides the durable byte slot the cart store
// mirrors itself into.
//
// This package implements the SlotStore interface defined in
// internal/cart/store.go.
//
// # Interface Implementation
//
//	var _ cart.SlotStore = (*Repository)(nil)
//
// # Usage
//
//	repo := cartslots.NewRepository(db, entities.SlotKeyCart)
//	payload, err := repo.Load()
package cartslots

import (
	"errors"

	"gorm.io/gorm"

	"github.com/greenbasket/storefront/internal/entities"
)

// ErrSlotNotFound is returned by Load when the slot has never been
// written. Callers treat it as an empty cart.
var ErrSlotNotFound = errors.New("cartslots: slot not found")

// Repository handles reads and writes of one named slot.
type Repository struct {
	db  *gorm.DB
	key string
}

// NewRepository creates a repository bound to a single slot key.
func NewRepository(db *gorm.DB, key string) *Repository {
	return &Repository{db: db, key: key}
}

// Load returns the slot payload, or ErrSlotNotFound when absent.
func (r *Repository) Load() ([]byte, error) {
	var slot entities.Slot
	err := r.db.Where("key = ?", r.key).First(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return slot.Payload, nil
}

// Save creates or overwrites the slot with the given payload.
func (r *Repository) Save(payload []byte) error {
	var slot entities.Slot
	result := r.db.Where("key = ?", r.key).First(&slot)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		slot = entities.Slot{
			Key:     r.key,
			Payload: payload,
		}
		return r.db.Create(&slot).Error
	} else if result.Error != nil {
		return result.Error
	}

	slot.Payload = payload
	return r.db.Save(&slot).Error
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (r *Repository) Delete() error {
	return r.db.Where("key = ?", r.key).Delete(&entities.Slot{}).Error
}
