package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrichef/nutrichef/backend/internal/service"
	"github.com/nutrichef/nutrichef/backend/internal/types"
)

// HistoryHandler handles per-user recipe history requests
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler instance
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

// ListHistory handles GET /api/recipe-history
func (h *HistoryHandler) ListHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, total, limit, offset, err := h.historyService.ListHistory(c.Request.Context(), userID, limit, offset)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to fetch history")
		return
	}

	respondList(c, entries, limit, offset, total)
}

// CreateHistory handles POST /api/recipe-history. The owning user is taken
// from the authenticated identity, never from the payload.
func (h *HistoryHandler) CreateHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req types.CreateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.historyService.RecordView(c.Request.Context(), userID, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to record history")
		return
	}

	respond(c, http.StatusCreated, entry)
}

// UpdateHistory handles PUT /api/recipe-history/:id
func (h *HistoryHandler) UpdateHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid history entry id")
		return
	}

	var req types.UpdateHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// The binding tag treats a present zero as absent, so check the range here
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		fail(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	entry, err := h.historyService.UpdateEntry(c.Request.Context(), userID, entryID, req.Rating, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			fail(c, http.StatusNotFound, "history entry not found")
		case errors.Is(err, service.ErrNotOwner):
			fail(c, http.StatusForbidden, "history entry belongs to another user")
		default:
			fail(c, http.StatusInternalServerError, "failed to update history entry")
		}
		return
	}

	respond(c, http.StatusOK, entry)
}
