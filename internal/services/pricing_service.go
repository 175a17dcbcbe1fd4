package services

import (
	"context"
	"strings"

	"transport-backend/internal/domain"
	"transport-backend/internal/utils"
)

// QuoteRequest is the body of a price preview.
type QuoteRequest struct {
	ScheduleID  string          `json:"scheduleId"`
	ServiceType string          `json:"serviceType"`
	Quantity    *utils.Quantity `json:"quantity"`
}

// PricingService produces advisory quotes. Bookings reprice on the server.
type PricingService struct {
	Schedules ScheduleService
}

// Quote prices a request against its schedule. A zero quantity counts as missing.
func (s PricingService) Quote(ctx context.Context, req QuoteRequest) (domain.PriceQuote, error) {
	var missing []domain.FieldViolation
	if strings.TrimSpace(req.ScheduleID) == "" {
		missing = append(missing, domain.FieldViolation{Field: "scheduleId", Message: "is required"})
	}
	if strings.TrimSpace(req.ServiceType) == "" {
		missing = append(missing, domain.FieldViolation{Field: "serviceType", Message: "is required"})
	}
	if req.Quantity == nil || *req.Quantity == 0 {
		missing = append(missing, domain.FieldViolation{Field: "quantity", Message: "is required"})
	}
	if len(missing) > 0 {
		return domain.PriceQuote{}, domain.ValidationError{Msg: "Missing required fields", Violations: missing}
	}

	variant, err := domain.LookupService(strings.ToLower(req.ServiceType))
	if err != nil {
		return domain.PriceQuote{}, err
	}

	schedule, err := s.Schedules.GetSchedule(ctx, req.ScheduleID)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	return variant.Price(schedule, *req.Quantity)
}
