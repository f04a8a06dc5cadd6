package entities

import (
	"time"

	"github.com/google/uuid"
)

// InventoryItem is trusted, user-confirmed data. Every field is required at
// creation and only Quantity may change afterwards; the repository exposes
// no other write path.
type InventoryItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	StorageLocation string    `json:"storage_location"`
	ExpiryDate      time.Time `json:"expiry_date"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
