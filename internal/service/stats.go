package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/model"
)

// Stats aggregates the dashboard numbers for one user
type Stats struct {
	RecipeCount   int64    `json:"recipe_count"`
	FavoriteCount int64    `json:"favorite_count"`
	HistoryCount  int64    `json:"history_count"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

// StatsService computes dashboard aggregates
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new StatsService instance
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// UserStats returns the user's recipe count, favorite count, history count
// and the average rating they have given across history entries.
func (s *StatsService) UserStats(ctx context.Context, userID uuid.UUID) (*Stats, error) {
	stats := &Stats{}

	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("user_id = ?", userID).
		Count(&stats.RecipeCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).
		Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
		Where("favorites.user_id = ?", userID).
		Count(&stats.FavoriteCount).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.HistoryEntry{}).
		Where("user_id = ?", userID).
		Count(&stats.HistoryCount).Error; err != nil {
		return nil, err
	}

	var avg sql.NullFloat64
	row := s.db.WithContext(ctx).Model(&model.HistoryEntry{}).
		Where("user_id = ? AND rating IS NOT NULL", userID).
		Select("AVG(rating)").Row()
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	if avg.Valid {
		stats.AverageRating = &avg.Float64
	}

	return stats, nil
}
