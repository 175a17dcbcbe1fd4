package handlers

import (
	"errors"
	"net/http"
	"time"

	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(auth services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !bindJSON(c, &req) {
			return
		}

		token, exp, err := auth.Login(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				utils.Log().Warn("admin login failed",
					zap.String("request_id", middleware.GetRequestID(c)),
					zap.String("username", req.Username),
				)
				respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password", nil)
				return
			}
			RespondDomainError(c, "auth", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresAt": exp.UTC().Format(time.RFC3339),
		})
	}
}
