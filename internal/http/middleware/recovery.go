package middleware

import (
	"fmt"
	"net/http"

	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into the standard 500 error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		utils.LogError(GetRequestID(c), "http", "panic", fmt.Errorf("%v", rec),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"code":       "internal_error",
			"request_id": GetRequestID(c),
		})
	})
}
