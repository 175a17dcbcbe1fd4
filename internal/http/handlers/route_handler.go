package handlers

import (
	"net/http"

	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/routes
func ListRoutes(c *gin.Context) {
	out, err := services.ScheduleService{}.ListRoutes(c.Request.Context())
	if err != nil {
		RespondDomainError(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/routes/:id
func GetRoute(c *gin.Context) {
	rt, err := services.ScheduleService{}.GetRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// GET /api/routes/:id/schedules
func ListRouteSchedules(c *gin.Context) {
	out, err := services.ScheduleService{}.RouteSchedules(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, "routes", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
