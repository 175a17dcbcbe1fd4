package handlers

import (
	"net/http"

	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{RequestID: middleware.GetRequestID(c), Actor: adminActor(c)}
}

// POST /api/bookings
// Any totalPrice, paymentStatus or bookingStatus in the body is ignored.
func CreateBooking(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}
	b, err := bookingService(c).CreateFromJSON(c.Request.Context(), raw)
	if err != nil {
		RespondDomainError(c, "booking", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	out, err := bookingService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	b, err := bookingService(c).Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// PATCH /api/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := bookingService(c).UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
