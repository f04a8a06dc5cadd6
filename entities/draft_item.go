package entities

import (
	"time"

	"github.com/google/uuid"
)

// DraftItem is an unconfirmed candidate produced by ingestion or manual
// entry. It may be partially specified; only confirmation promotes its
// data into trusted inventory.
type DraftItem struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID  `gorm:"index" json:"user_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Quantity        *float64   `json:"quantity,omitempty"`
	Unit            string     `json:"unit,omitempty"`
	Location        string     `json:"location,omitempty"`
	ExpirationDate  *time.Time `json:"expiration_date,omitempty"`
	Source          string     `json:"source"` // "manual", "ai", "barcode", "image"
	ConfidenceScore *float64   `json:"confidence_score,omitempty"`
	Notes           string     `gorm:"type:text" json:"notes,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
