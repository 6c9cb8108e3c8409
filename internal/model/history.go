package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RecipeSnapshot is the copy of a recipe embedded in a history entry at view
// time. It is stored as JSONB and is not a foreign key: deleting the recipe
// leaves the snapshot untouched.
type RecipeSnapshot struct {
	RecipeID        uuid.UUID        `json:"recipe_id"`
	Name            string           `json:"name"`
	CuisineType     string           `json:"cuisine_type"`
	Ingredients     JSONBStringArray `json:"ingredients"`
	Instructions    JSONBStringArray `json:"instructions"`
	Calories        float64          `json:"calories"`
	Protein         float64          `json:"protein"`
	Carbs           float64          `json:"carbs"`
	Fat             float64          `json:"fat"`
	PrepTimeMinutes int              `json:"prep_time_minutes"`
	CookTimeMinutes int              `json:"cook_time_minutes"`
	Servings        int              `json:"servings"`
}

// Value implements the driver.Valuer interface
func (s RecipeSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements the sql.Scanner interface
func (s *RecipeSnapshot) Scan(value interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	case nil:
		*s = RecipeSnapshot{}
		return nil
	default:
		return fmt.Errorf("unsupported snapshot column type %T", value)
	}

	return json.Unmarshal(bytes, s)
}

// SnapshotOf copies the fields of a recipe into a snapshot.
func SnapshotOf(r *Recipe) RecipeSnapshot {
	return RecipeSnapshot{
		RecipeID:        r.ID,
		Name:            r.Name,
		CuisineType:     r.CuisineType,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		Calories:        r.Calories,
		Protein:         r.Protein,
		Carbs:           r.Carbs,
		Fat:             r.Fat,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Servings:        r.Servings,
	}
}

// HistoryEntry records a user's interaction with a recipe. Entries are never
// deleted automatically; rating and notes follow last-write-wins.
type HistoryEntry struct {
	ID       uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID uuid.UUID      `gorm:"type:uuid" json:"recipe_id"`
	Recipe   RecipeSnapshot `gorm:"type:jsonb" json:"recipe"`
	ViewedAt time.Time      `json:"viewed_at"`
	Rating   *int           `json:"rating,omitempty"`
	Notes    string         `gorm:"type:text" json:"notes,omitempty"`
}
