package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/model"
)

var ErrNotOwner = errors.New("history entry belongs to another user")

// HistoryService handles per-user recipe history
type HistoryService struct {
	db *gorm.DB
}

// NewHistoryService creates a new HistoryService instance
func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// RecordView creates a history entry holding a snapshot of the recipe as it
// exists right now. The snapshot deliberately does not reference the recipe
// row, so deleting the recipe later leaves the entry intact.
func (s *HistoryService) RecordView(ctx context.Context, userID, recipeID uuid.UUID) (*model.HistoryEntry, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, err
	}

	entry := model.HistoryEntry{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
		Recipe:   model.SnapshotOf(&recipe),
		ViewedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}

// ListHistory returns the user's history entries, newest first
func (s *HistoryService) ListHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.HistoryEntry, int64, int, int, error) {
	limit, offset = ClampPage(limit, offset)

	query := s.db.WithContext(ctx).Model(&model.HistoryEntry{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	var entries []model.HistoryEntry
	if err := query.Order("viewed_at DESC").Limit(limit).Offset(offset).Find(&entries).Error; err != nil {
		return nil, 0, limit, offset, err
	}

	return entries, total, limit, offset, nil
}

// UpdateEntry sets rating and/or notes on an entry owned by the user.
// Last write wins; entries are never deleted.
func (s *HistoryService) UpdateEntry(ctx context.Context, userID, entryID uuid.UUID, rating *int, notes *string) (*model.HistoryEntry, error) {
	var entry model.HistoryEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrNotOwner
	}

	if rating != nil {
		entry.Rating = rating
	}
	if notes != nil {
		entry.Notes = *notes
	}

	if err := s.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, err
	}

	return &entry, nil
}
