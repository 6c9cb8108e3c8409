package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/model"
	"github.com/nutrichef/nutrichef/backend/internal/service"
	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// RecipeHandler handles recipe CRUD requests
type RecipeHandler struct {
	recipeService *service.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipeService *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// ListRecipes handles GET /api/recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var q types.ListRecipesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	recipes, total, limit, offset, err := h.recipeService.ListRecipes(c.Request.Context(), &q)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to fetch recipes")
		return
	}

	respondList(c, recipes, limit, offset, total)
}

// GetRecipe handles GET /api/recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "recipe not found")
		return
	}

	respond(c, http.StatusOK, recipe)
}

// CreateRecipe handles POST /api/recipes
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	recipe := &model.Recipe{
		Name:            req.Name,
		CuisineType:     req.CuisineType,
		Ingredients:     model.JSONBStringArray(req.Ingredients),
		Instructions:    model.JSONBStringArray(req.Instructions),
		Calories:        req.Calories,
		Protein:         req.Protein,
		Carbs:           req.Carbs,
		Fat:             req.Fat,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		UserID:          userID,
	}

	created, err := h.recipeService.CreateRecipe(c.Request.Context(), recipe)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to create recipe")
		return
	}

	respond(c, http.StatusCreated, created)
}

// UpdateRecipe handles PUT /api/recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	respond(c, http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to delete recipe")
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id})
}
