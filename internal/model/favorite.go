package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a recipe as a favorite of one user. Unlike history entries it
// references the live recipe row, so a deleted recipe silently drops out of
// the user's favorites list.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}
