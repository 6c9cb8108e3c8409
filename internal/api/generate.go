package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrichef/nutrichef/backend/config"
	"github.com/nutrichef/nutrichef/backend/internal/service"
	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// GenerateHandler handles LLM-backed recipe generation
type GenerateHandler struct {
	generationService *service.GenerationService
}

// NewGenerateHandler creates a new GenerateHandler instance
func NewGenerateHandler(generationService *service.GenerationService) *GenerateHandler {
	return &GenerateHandler{generationService: generationService}
}

// validateGenerateRequest enforces the payload contract. Violations are
// rejected before the provider is ever contacted.
func validateGenerateRequest(req *types.GenerateRecipeRequest) string {
	if len(req.Ingredients) == 0 {
		return "ingredients must be a non-empty list"
	}
	for _, ing := range req.Ingredients {
		if strings.TrimSpace(ing) == "" {
			return "ingredients must not contain blank entries"
		}
	}
	if req.Servings != 0 && (req.Servings < 1 || req.Servings > 20) {
		return "servings must be between 1 and 20"
	}
	switch req.CookingTimePreference {
	case "", service.CookingTimeQuick, service.CookingTimeMedium, service.CookingTimeLong:
	default:
		return "cookingTimePreference must be one of: quick, medium, long"
	}
	return ""
}

// Generate handles POST /api/recipes/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if msg := validateGenerateRequest(&req); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	text, err := h.generationService.GenerateRecipe(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoAPIKey):
			fail(c, http.StatusInternalServerError, "recipe generation is not configured")
		case errors.Is(err, service.ErrProviderAuth):
			fail(c, http.StatusUnauthorized, "generation provider rejected credentials")
		case errors.Is(err, service.ErrProviderQuota):
			fail(c, http.StatusTooManyRequests, "generation provider quota exceeded")
		case errors.Is(err, service.ErrProviderUnavailable):
			fail(c, http.StatusServiceUnavailable, "generation provider is unavailable")
		default:
			msg := "internal server error"
			if !config.IsProduction() {
				msg = err.Error()
			}
			fail(c, http.StatusInternalServerError, msg)
		}
		return
	}

	respond(c, http.StatusOK, types.GenerateRecipeResponse{
		Recipe:               text,
		GeneratedAt:          time.Now(),
		Request:              req,
		EstimatedCookingTime: service.EstimatedCookingTime(req.CookingTimePreference),
	})
}
