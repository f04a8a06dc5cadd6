package entities

import (
	"time"

	"github.com/google/uuid"
)

// SavedRecipe is a denormalized snapshot of a generated recipe. Ingredients
// and instructions are serialized JSON, matching how generated payloads are
// stored elsewhere. A user may save a given title only once.
type SavedRecipe struct {
	ID                   uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID               uuid.UUID `gorm:"index;uniqueIndex:idx_saved_recipes_user_title" json:"user_id"`
	Title                string    `gorm:"uniqueIndex:idx_saved_recipes_user_title" json:"title"`
	Description          string    `json:"description"`
	CookingTimeMinutes   int       `json:"cooking_time_minutes"`
	Servings             int       `json:"servings"`
	Difficulty           string    `json:"difficulty"` // "easy", "medium", "hard"
	Ingredients          string    `gorm:"type:text" json:"ingredients"`
	Instructions         string    `gorm:"type:text" json:"instructions"`
	Tips                 string    `json:"tips,omitempty"`
	RecommendationReason string    `json:"recommendation_reason,omitempty"`
	SavedAt              time.Time `gorm:"type:timestamp;index" json:"saved_at"`

	User *User `gorm:"foreignKey:UserID"`
}
