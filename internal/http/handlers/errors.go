package handlers

import (
	"errors"
	"net/http"

	"transport-backend/internal/domain"
	"transport-backend/internal/http/middleware"
	"transport-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error          string                  `json:"error"`
	Code           string                  `json:"code,omitempty"`
	Details        []domain.FieldViolation `json:"details,omitempty"`
	AvailableSeats *int                    `json:"availableSeats,omitempty"`
	RequestedSeats *int                    `json:"requestedSeats,omitempty"`
	RequestID      string                  `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details []domain.FieldViolation) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Unclassified errors
// are logged and surface as a generic 500.
func RespondDomainError(c *gin.Context, module string, err error) {
	var (
		ve domain.ValidationError
		ae domain.AvailabilityError
	)
	switch {
	case errors.As(err, &ae):
		available, requested := ae.AvailableSeats, ae.RequestedSeats
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:          ae.Error(),
			Code:           "not_enough_seats",
			AvailableSeats: &available,
			RequestedSeats: &requested,
			RequestID:      middleware.GetRequestID(c),
		})
	case domain.IsInvalidServiceType(err):
		respondError(c, http.StatusBadRequest, "invalid_service_type", "Invalid service type", nil)
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, "validation_error", ve.Error(), ve.Details())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		utils.LogError(middleware.GetRequestID(c), module, c.Request.Method+" "+c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Internal server error", nil)
	}
}
