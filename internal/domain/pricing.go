package domain

import (
	"errors"

	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"
)

type PriceQuote struct {
	BasePrice  utils.Money    `json:"basePrice"`
	Quantity   utils.Quantity `json:"quantity"`
	TotalPrice utils.Money    `json:"totalPrice"`
	Currency   string         `json:"currency"`
}

// CalculatePrice prices quantity units of serviceType on schedule s.
// The booking flow and the standalone preview both go through here.
func CalculatePrice(s models.Schedule, serviceType string, quantity utils.Quantity) (PriceQuote, error) {
	v, err := LookupService(serviceType)
	if err != nil {
		return PriceQuote{}, err
	}
	return v.Price(s, quantity)
}

// Price computes rate × quantity, rounded half-up to the cent.
func (v ServiceVariant) Price(s models.Schedule, quantity utils.Quantity) (PriceQuote, error) {
	if quantity < 0 {
		return PriceQuote{}, ValidationError{Field: "quantity", Msg: "must not be negative"}
	}
	base := v.UnitRate(s)
	total, err := base.Times(quantity)
	if err != nil {
		if errors.Is(err, utils.ErrAmountOverflow) {
			return PriceQuote{}, ValidationError{Field: "quantity", Msg: "total price exceeds the supported range", Err: err}
		}
		return PriceQuote{}, err
	}
	return PriceQuote{
		BasePrice:  base,
		Quantity:   quantity,
		TotalPrice: total,
		Currency:   Currency,
	}, nil
}
