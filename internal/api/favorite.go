package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/service"
)

// FavoriteHandler handles per-user favorite recipes
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

// NewFavoriteHandler creates a new FavoriteHandler instance
func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavorite handles POST /api/recipes/:id/favorite. Adding a recipe that is
// already a favorite succeeds without creating a second mark.
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	favorite, created, err := h.favoriteService.Add(c.Request.Context(), userID, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to add favorite")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respond(c, status, favorite)
}

// RemoveFavorite handles DELETE /api/recipes/:id/favorite
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe is not a favorite")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to remove favorite")
		return
	}

	respond(c, http.StatusOK, gin.H{"recipe_id": recipeID})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	recipes, total, limit, offset, err := h.favoriteService.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to fetch favorites")
		return
	}

	respondList(c, recipes, limit, offset, total)
}
