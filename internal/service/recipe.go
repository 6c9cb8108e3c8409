package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/model"
	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// MaxPageSize caps the limit query parameter on list endpoints
const MaxPageSize = 100

// DefaultPageSize applies when the caller does not send a limit
const DefaultPageSize = 20

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe creates a new recipe
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe applies a partial update. ID and creation timestamp are never
// touched.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.UpdateRecipeRequest) (*model.Recipe, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.CuisineType != nil {
		updates["cuisine_type"] = *req.CuisineType
	}
	if req.Ingredients != nil {
		updates["ingredients"] = model.JSONBStringArray(req.Ingredients)
	}
	if req.Instructions != nil {
		updates["instructions"] = model.JSONBStringArray(req.Instructions)
	}
	if req.Calories != nil {
		updates["calories"] = *req.Calories
	}
	if req.Protein != nil {
		updates["protein"] = *req.Protein
	}
	if req.Carbs != nil {
		updates["carbs"] = *req.Carbs
	}
	if req.Fat != nil {
		updates["fat"] = *req.Fat
	}
	if req.PrepTimeMinutes != nil {
		updates["prep_time_minutes"] = *req.PrepTimeMinutes
	}
	if req.CookTimeMinutes != nil {
		updates["cook_time_minutes"] = *req.CookTimeMinutes
	}
	if req.Servings != nil {
		updates["servings"] = *req.Servings
	}

	if len(updates) > 0 {
		result := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe deletes a recipe. History snapshots are copies and are left
// untouched.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error
}

// SetImageURL stores the uploaded image location on a recipe
func (s *RecipeService) SetImageURL(ctx context.Context, id uuid.UUID, url string) error {
	result := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Update("image_url", url)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClampPage normalizes pagination bounds: limit defaults to DefaultPageSize
// and is capped at MaxPageSize, offset is forced non-negative.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// ListRecipes lists recipes with optional nutrition bounds and clamped
// pagination. Returns the page, the total match count and the effective
// limit/offset.
func (s *RecipeService) ListRecipes(ctx context.Context, q *types.ListRecipesQuery) ([]model.Recipe, int64, int, int, error) {
	limit, offset := ClampPage(q.Limit, q.Offset)

	query := s.db.WithContext(ctx).Model(&model.Recipe{})
	if q.MinCalories != nil {
		query = query.Where("calories >= ?", *q.MinCalories)
	}
	if q.MaxCalories != nil {
		query = query.Where("calories <= ?", *q.MaxCalories)
	}
	if q.MinProtein != nil {
		query = query.Where("protein >= ?", *q.MinProtein)
	}
	if q.MaxProtein != nil {
		query = query.Where("protein <= ?", *q.MaxProtein)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	var recipes []model.Recipe
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	return recipes, total, limit, offset, nil
}
