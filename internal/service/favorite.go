package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/model"
)

// FavoriteService handles per-user favorite recipes
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Add marks a recipe as a favorite of the user. Adding an existing favorite
// is a no-op; the second return value reports whether a new mark was created.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) (*model.Favorite, bool, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, false, err
	}

	var existing model.Favorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}

	favorite := model.Favorite{
		ID:        uuid.New(),
		UserID:    userID,
		RecipeID:  recipeID,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&favorite).Error; err != nil {
		// A concurrent add landing first still counts as already-favorited
		if isDuplicateKey(err) {
			if lookupErr := s.db.WithContext(ctx).
				Where("user_id = ? AND recipe_id = ?", userID, recipeID).
				First(&existing).Error; lookupErr == nil {
				return &existing, false, nil
			}
		}
		return nil, false, err
	}

	return &favorite, true, nil
}

// Remove unmarks a recipe. Returns gorm.ErrRecordNotFound when the recipe was
// not a favorite of the user.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&model.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List returns the user's favorite recipes, most recently favorited first.
// The join goes through the live recipe rows, so soft-deleted recipes are
// excluded and the marks pointing at them simply stop showing up.
func (s *FavoriteService) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Recipe, int64, int, int, error) {
	limit, offset = ClampPage(limit, offset)

	query := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	var recipes []model.Recipe
	if err := query.Order("favorites.created_at DESC").Limit(limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	return recipes, total, limit, offset, nil
}

// Count returns how many of the user's favorites point at live recipes
func (s *FavoriteService) Count(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Count(&total).Error
	return total, err
}
