package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrichef/nutrichef/backend/internal/middleware"
)

// respond writes the success envelope
func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondList writes the success envelope with a pagination block
func respondList(c *gin.Context, data interface{}, limit, offset int, total int64) {
	c.JSON(200, gin.H{
		"success": true,
		"data":    data,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// fail writes the error envelope
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// currentUserID pulls the authenticated user ID set by the auth middleware
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := val.(uuid.UUID)
	return id, ok
}
