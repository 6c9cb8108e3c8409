package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and dependency status
type HealthHandler struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewHealthHandler creates a new HealthHandler instance
func NewHealthHandler(db *gorm.DB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redisClient}
}

// Health handles GET /health and GET /api/health
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	checks := gin.H{}

	if h.db != nil {
		checks["database"] = "ok"
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			checks["database"] = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}

	if h.redis != nil {
		checks["redis"] = "ok"
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			// Degraded, not down: the limiter falls back gracefully
			checks["redis"] = "unavailable"
		}
	}

	c.JSON(status, gin.H{
		"success": status == http.StatusOK,
		"data":    gin.H{"status": "up", "checks": checks},
	})
}
