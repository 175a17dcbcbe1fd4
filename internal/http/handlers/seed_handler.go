package handlers

import (
	"net/http"

	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/seed loads demo data. Disabled unless enabled is true.
func Seed(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			respondError(c, http.StatusNotFound, "not_found", "Seeding is disabled", nil)
			return
		}
		res, err := services.SeedService{RequestID: middleware.GetRequestID(c)}.Seed(c.Request.Context())
		if err != nil {
			RespondDomainError(c, "seed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":   "Sample data created successfully",
			"routes":    res.Routes,
			"schedules": res.Schedules,
		})
	}
}
