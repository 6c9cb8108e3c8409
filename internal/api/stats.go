package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrichef/nutrichef/backend/internal/service"
)

// StatsHandler serves the dashboard aggregates
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler instance
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	stats, err := h.statsService.UserStats(c.Request.Context(), userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	respond(c, http.StatusOK, stats)
}
