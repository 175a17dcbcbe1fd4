package handlers

import (
	"net/http"

	"transport-backend/internal/domain/models"
	"transport-backend/internal/http/middleware"
	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

func inquiryService(c *gin.Context) services.InquiryService {
	return services.InquiryService{RequestID: middleware.GetRequestID(c), Actor: adminActor(c)}
}

// POST /api/contact
func SubmitInquiry(c *gin.Context) {
	var in models.ContactInquiryInput
	if !bindJSON(c, &in) {
		return
	}
	inquiry, err := inquiryService(c).Submit(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, "contact", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Contact inquiry submitted successfully",
		"id":      inquiry.ID,
	})
}

// GET /api/contact
func ListInquiries(c *gin.Context) {
	out, err := inquiryService(c).List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, "contact", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PATCH /api/contact/:id/status
func UpdateInquiryStatus(c *gin.Context) {
	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}
	out, err := inquiryService(c).UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		RespondDomainError(c, "contact", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
