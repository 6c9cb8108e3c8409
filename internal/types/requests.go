package types

import (
	"time"

	"github.com/google/uuid"
)

// GenerateRecipeRequest is the payload for POST /api/recipes/generate.
// The cooking-time concept is carried only as the preference enum; a numeric
// cooking_time field is not accepted.
type GenerateRecipeRequest struct {
	Ingredients           []string `json:"ingredients" binding:"required"`
	DietaryRestrictions   []string `json:"dietaryRestrictions"`
	Servings              int      `json:"servings"`
	CuisineType           string   `json:"cuisineType"`
	CookingTimePreference string   `json:"cookingTimePreference"`
}

// GenerateRecipeResponse wraps the raw generated text with a timestamp and
// an echo of the validated input.
type GenerateRecipeResponse struct {
	Recipe      string                `json:"recipe"`
	GeneratedAt time.Time             `json:"generated_at"`
	Request     GenerateRecipeRequest `json:"request"`

	// EstimatedCookingTime is derived from the preference enum:
	// quick=15, medium=45, long=90 minutes.
	EstimatedCookingTime int `json:"estimatedCookingTime,omitempty"`
}

// CreateRecipeRequest is the payload for POST /api/recipes
type CreateRecipeRequest struct {
	Name            string   `json:"name" binding:"required"`
	CuisineType     string   `json:"cuisine_type"`
	Ingredients     []string `json:"ingredients" binding:"required,min=1"`
	Instructions    []string `json:"instructions" binding:"required,min=1"`
	Calories        float64  `json:"calories" binding:"min=0"`
	Protein         float64  `json:"protein" binding:"min=0"`
	Carbs           float64  `json:"carbs" binding:"min=0"`
	Fat             float64  `json:"fat" binding:"min=0"`
	PrepTimeMinutes int      `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes int      `json:"cook_time_minutes" binding:"min=0"`
	Servings        int      `json:"servings" binding:"required,min=1"`
}

// UpdateRecipeRequest is the payload for PUT /api/recipes/:id. All fields are
// optional; absent fields are left unchanged. ID and creation timestamp are
// immutable and have no counterpart here.
type UpdateRecipeRequest struct {
	Name            *string  `json:"name"`
	CuisineType     *string  `json:"cuisine_type"`
	Ingredients     []string `json:"ingredients"`
	Instructions    []string `json:"instructions"`
	Calories        *float64 `json:"calories"`
	Protein         *float64 `json:"protein"`
	Carbs           *float64 `json:"carbs"`
	Fat             *float64 `json:"fat"`
	PrepTimeMinutes *int     `json:"prep_time_minutes"`
	CookTimeMinutes *int     `json:"cook_time_minutes"`
	Servings        *int     `json:"servings"`
}

// ListRecipesQuery carries the list filters and pagination bounds
type ListRecipesQuery struct {
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
	MinCalories *float64 `form:"minCalories"`
	MaxCalories *float64 `form:"maxCalories"`
	MinProtein  *float64 `form:"minProtein"`
	MaxProtein  *float64 `form:"maxProtein"`
}

// CreateHistoryRequest is the payload for POST /api/recipe-history
type CreateHistoryRequest struct {
	RecipeID uuid.UUID `json:"recipe_id" binding:"required"`
}

// UpdateHistoryRequest is the payload for PUT /api/recipe-history/:id
type UpdateHistoryRequest struct {
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Notes  *string `json:"notes"`
}

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
