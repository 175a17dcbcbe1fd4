package handlers

import (
	"net/http"

	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/ticket returns the booking confirmation (inline PDF).
func GetBookingTicket(c *gin.Context) {
	rid := middleware.GetRequestID(c)
	svc := services.DocsService{
		Bookings:  services.BookingService{RequestID: rid},
		Schedules: services.ScheduleService{},
		RequestID: rid,
	}
	pdfBytes, filename, err := svc.GenerateTicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, "docs", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
