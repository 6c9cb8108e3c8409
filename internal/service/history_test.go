package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHistoryServiceSnapshotIsDetached(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	history := NewHistoryService(db)
	userID := uuid.New()

	recipe := seedRecipe(t, recipes, "Ephemeral", 400)

	entry, err := history.RecordView(context.Background(), userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ephemeral", entry.Recipe.Name)
	assert.Equal(t, recipe.ID, entry.Recipe.RecipeID)

	// A later change to the recipe does not rewrite the snapshot
	require.NoError(t, recipes.DeleteRecipe(context.Background(), recipe.ID))

	entries, total, _, _, err := history.ListHistory(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "Ephemeral", entries[0].Recipe.Name)
}

func TestHistoryServiceRecordViewUnknownRecipe(t *testing.T) {
	history := NewHistoryService(newTestDB(t))

	_, err := history.RecordView(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHistoryServiceUpdateEntryOwnership(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	history := NewHistoryService(db)
	owner := uuid.New()
	stranger := uuid.New()

	recipe := seedRecipe(t, recipes, "Owned", 400)
	entry, err := history.RecordView(context.Background(), owner, recipe.ID)
	require.NoError(t, err)

	rating := 3
	_, err = history.UpdateEntry(context.Background(), stranger, entry.ID, &rating, nil)
	assert.ErrorIs(t, err, ErrNotOwner)

	updated, err := history.UpdateEntry(context.Background(), owner, entry.ID, &rating, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 3, *updated.Rating)
}

func TestHistoryServiceUpdateEntryPartial(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	history := NewHistoryService(db)
	userID := uuid.New()

	recipe := seedRecipe(t, recipes, "Noted", 400)
	entry, err := history.RecordView(context.Background(), userID, recipe.ID)
	require.NoError(t, err)

	notes := "too salty"
	updated, err := history.UpdateEntry(context.Background(), userID, entry.ID, nil, &notes)
	require.NoError(t, err)
	assert.Equal(t, "too salty", updated.Notes)
	assert.Nil(t, updated.Rating)

	rating := 2
	updated, err = history.UpdateEntry(context.Background(), userID, entry.ID, &rating, nil)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 2, *updated.Rating)
	assert.Equal(t, "too salty", updated.Notes)
}

func TestHistoryServiceListIsScopedToUser(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	history := NewHistoryService(db)
	alice := uuid.New()
	bob := uuid.New()

	recipe := seedRecipe(t, recipes, "Shared", 400)
	_, err := history.RecordView(context.Background(), alice, recipe.ID)
	require.NoError(t, err)

	_, total, _, _, err := history.ListHistory(context.Background(), bob, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
