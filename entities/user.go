package entities

import (
	"github.com/google/uuid"
)

// User is an ownership anchor only. Identity comes from the gateway as an
// opaque id, so there are no credentials here.
type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`

	Timestamp
}
