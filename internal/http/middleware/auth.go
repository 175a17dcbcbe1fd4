package middleware

import (
	"net/http"
	"strings"

	"transport-backend/internal/domain"
	"transport-backend/internal/services"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const requestContextKey = "request_context"

// RequireAdmin rejects requests without a valid admin bearer token. It passes
// everything through when auth is not configured.
func RequireAdmin(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Authorization required")
			return
		}

		rc, err := auth.Verify(strings.TrimSpace(token))
		if err != nil {
			utils.Log().Warn("admin token rejected",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		c.Set(requestContextKey, rc)
		c.Next()
	}
}

// GetRequestContext returns the authenticated admin, if any.
func GetRequestContext(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(requestContextKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", `Bearer realm="admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
