package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/middleware"
	"github.com/nutrichef/nutrichef/backend/internal/model"
	"github.com/nutrichef/nutrichef/backend/internal/service"
)

// maxImageSize caps recipe photo uploads at 5 MB
const maxImageSize = 5 << 20

// ImageHandler handles recipe photo uploads
type ImageHandler struct {
	imageService  *service.ImageService
	recipeService *service.RecipeService
}

// NewImageHandler creates a new ImageHandler instance
func NewImageHandler(imageService *service.ImageService, recipeService *service.RecipeService) *ImageHandler {
	return &ImageHandler{imageService: imageService, recipeService: recipeService}
}

// UploadRecipeImage handles POST /api/recipes/:id/image. Only the recipe's
// owner or an admin may replace its photo.
func (h *ImageHandler) UploadRecipeImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid recipe id")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusNotFound, "recipe not found")
		return
	}
	if recipe.UserID != userID && c.GetString(middleware.ContextRole) != model.RoleAdmin {
		fail(c, http.StatusForbidden, "recipe belongs to another user")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		fail(c, http.StatusBadRequest, "image exceeds the 5MB size limit")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" {
		fail(c, http.StatusBadRequest, "image must be JPEG or PNG")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to read image")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to read image")
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, service.ErrStorageDisabled) {
			fail(c, http.StatusInternalServerError, "image storage is not configured")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to store image")
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), id, url); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to update recipe")
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id, "image_url": url})
}
