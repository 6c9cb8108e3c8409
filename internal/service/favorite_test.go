package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFavoriteServiceAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	userID := uuid.New()

	recipe := seedRecipe(t, recipes, "Pudim", 350)

	first, created, err := favorites.Add(context.Background(), userID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := favorites.Add(context.Background(), userID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	count, err := favorites.Count(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFavoriteServiceAddUnknownRecipe(t *testing.T) {
	favorites := NewFavoriteService(newTestDB(t))

	_, _, err := favorites.Add(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFavoriteServiceRemove(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	userID := uuid.New()

	recipe := seedRecipe(t, recipes, "Brigadeiro", 180)
	_, _, err := favorites.Add(context.Background(), userID, recipe.ID)
	require.NoError(t, err)

	require.NoError(t, favorites.Remove(context.Background(), userID, recipe.ID))
	assert.ErrorIs(t, favorites.Remove(context.Background(), userID, recipe.ID), gorm.ErrRecordNotFound)
}

func TestFavoriteServiceListExcludesDeletedRecipes(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	favorites := NewFavoriteService(db)
	userID := uuid.New()

	kept := seedRecipe(t, recipes, "Kept", 400)
	doomed := seedRecipe(t, recipes, "Doomed", 500)
	for _, r := range []uuid.UUID{kept.ID, doomed.ID} {
		_, _, err := favorites.Add(context.Background(), userID, r)
		require.NoError(t, err)
	}

	require.NoError(t, recipes.DeleteRecipe(context.Background(), doomed.ID))

	list, total, _, _, err := favorites.List(context.Background(), userID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Kept", list[0].Name)
	assert.Equal(t, int64(1), total)

	count, err := favorites.Count(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
