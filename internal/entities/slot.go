package entities

import "time"

// Slot is a named durable byte slot in the local database. The cart
// persists its serialized line-item list into a single slot.
type Slot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:100" json:"key"`
	Payload   []byte    `gorm:"type:blob" json:"payload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Slot) TableName() string {
	return "slots"
}

// SlotKeyCart is the single slot owned by the cart store.
const SlotKeyCart = "cart"
