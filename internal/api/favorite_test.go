package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrichef/nutrichef/backend/internal/model"
)

func TestAddAndListFavorites(t *testing.T) {
	env := setupTestEnv(t, nil)
	user, token := env.createTestUser(t, model.RoleUser)
	recipe := env.createTestRecipe(t, user.ID, "Moqueca", 480, 32)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var favorite model.Favorite
	decodeData(t, w, &favorite)
	assert.Equal(t, user.ID, favorite.UserID)
	assert.Equal(t, recipe.ID, favorite.RecipeID)

	w = env.performRequest(http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var recipes []model.Recipe
	env2 := decodeData(t, w, &recipes)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Moqueca", recipes[0].Name)
	assert.Equal(t, int64(1), env2.Pagination.Total)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	env := setupTestEnv(t, nil)
	user, token := env.createTestUser(t, model.RoleUser)
	recipe := env.createTestRecipe(t, user.ID, "Feijoada", 720, 38)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Favoriting again succeeds without creating a second mark
	w = env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.performRequest(http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env2 := decodeEnvelope(t, w)
	assert.Equal(t, int64(1), env2.Pagination.Total)
}

func TestAddFavoriteUnknownRecipe(t *testing.T) {
	env := setupTestEnv(t, nil)
	_, token := env.createTestUser(t, model.RoleUser)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+uuid.NewString()+"/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFavorite(t *testing.T) {
	env := setupTestEnv(t, nil)
	user, token := env.createTestUser(t, model.RoleUser)
	recipe := env.createTestRecipe(t, user.ID, "Acaraje", 390, 14)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.performRequest(http.MethodDelete, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.performRequest(http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decodeEnvelope(t, w).Pagination.Total)

	// Removing again reports the mark as gone
	w = env.performRequest(http.MethodDelete, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFavoritesAreScopedToUser(t *testing.T) {
	env := setupTestEnv(t, nil)
	alice, aliceToken := env.createTestUser(t, model.RoleUser)
	_, bobToken := env.createTestUser(t, model.RoleUser)
	recipe := env.createTestRecipe(t, alice.ID, "Vatapa", 430, 17)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", aliceToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.performRequest(http.MethodGet, "/api/favorites", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decodeEnvelope(t, w).Pagination.Total)
}

func TestDeletedRecipeDropsOutOfFavorites(t *testing.T) {
	env := setupTestEnv(t, nil)
	user, token := env.createTestUser(t, model.RoleUser)
	_, adminToken := env.createTestUser(t, model.RoleAdmin)
	recipe := env.createTestRecipe(t, user.ID, "Fleeting", 300, 12)

	w := env.performRequest(http.MethodPost, "/api/recipes/"+recipe.ID.String()+"/favorite", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.performRequest(http.MethodDelete, "/api/recipes/"+recipe.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.performRequest(http.MethodGet, "/api/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var recipes []model.Recipe
	env2 := decodeData(t, w, &recipes)
	assert.Empty(t, recipes)
	assert.Equal(t, int64(0), env2.Pagination.Total)
}

func TestFavoritesRequireAuth(t *testing.T) {
	env := setupTestEnv(t, nil)

	w := env.performRequest(http.MethodGet, "/api/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.performRequest(http.MethodPost, "/api/recipes/"+uuid.NewString()+"/favorite", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
