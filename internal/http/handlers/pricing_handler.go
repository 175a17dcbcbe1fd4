package handlers

import (
	"net/http"

	"transport-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/calculate-price
func CalculatePrice(c *gin.Context) {
	var req services.QuoteRequest
	if !bindJSON(c, &req) {
		return
	}
	quote, err := services.PricingService{}.Quote(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, "pricing", err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
