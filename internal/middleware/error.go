package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/nutrichef/nutrichef/backend/config"
)

// ErrorHandler recovers from panics in handlers, logs full detail server-side
// and returns a sanitized envelope. The underlying message and stack trace
// are included in the response only outside production.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := debug.Stack()
				log.Printf("panic recovered: %v\n%s", err, stack)

				body := gin.H{"success": false, "message": "internal server error"}
				if !config.IsProduction() {
					body["message"] = fmt.Sprintf("%v", err)
					body["stack"] = string(stack)
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, body)
			}
		}()

		c.Next()
	}
}
