package handlers

import (
	"net/http"

	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/schedules?from&to&date
// Without both from and to every schedule is returned, latest departure first.
func ListSchedules(c *gin.Context) {
	q := services.SearchQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		Date: c.Query("date"),
	}
	out, err := services.ScheduleService{}.Search(c.Request.Context(), q)
	if err != nil {
		RespondDomainError(c, "schedules", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
