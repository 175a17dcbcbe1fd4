package domain

import (
	"testing"

	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"
)

func money(s string) *utils.Money {
	m, err := utils.ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return &m
}

func intPtr(n int) *int { return &n }

func sampleSchedule() models.Schedule {
	return models.Schedule{
		ID:                 "sch-1",
		AvailableSeats:     intPtr(55),
		MaxPassengers:      intPtr(55),
		BasePricePassenger: money("45.00"),
		BasePricePackage:   money("8.00"),
		BasePriceCar:       money("350.00"),
	}
}

func TestCalculatePricePassenger(t *testing.T) {
	q, err := CalculatePrice(sampleSchedule(), "passenger", utils.QuantityFromInt(2))
	if err != nil {
		t.Fatalf("CalculatePrice error: %v", err)
	}
	if q.TotalPrice.String() != "90.00" {
		t.Fatalf("total = %s, want 90.00", q.TotalPrice)
	}
	if q.BasePrice.String() != "45.00" || q.Currency != "EUR" {
		t.Fatalf("unexpected quote %+v", q)
	}
}

func TestCalculatePriceEqualsRateTimesQuantity(t *testing.T) {
	s := sampleSchedule()
	for q := 0; q <= 55; q++ {
		quote, err := CalculatePrice(s, "passenger", utils.QuantityFromInt(q))
		if err != nil {
			t.Fatalf("q=%d: %v", q, err)
		}
		if int64(quote.TotalPrice) != int64(*s.BasePricePassenger)*int64(q) {
			t.Fatalf("q=%d: total %s", q, quote.TotalPrice)
		}
	}
}

func TestCalculatePricePackageByWeight(t *testing.T) {
	q, err := CalculatePrice(sampleSchedule(), "package", utils.Quantity(1250))
	if err != nil {
		t.Fatalf("CalculatePrice error: %v", err)
	}
	if q.TotalPrice.String() != "100.00" {
		t.Fatalf("total = %s, want 100.00", q.TotalPrice)
	}
}

func TestCalculatePriceMissingRateIsZero(t *testing.T) {
	s := sampleSchedule()
	s.BasePriceCar = nil
	q, err := CalculatePrice(s, "car", utils.QuantityFromInt(1))
	if err != nil {
		t.Fatalf("CalculatePrice error: %v", err)
	}
	if q.TotalPrice != 0 || q.BasePrice != 0 {
		t.Fatalf("expected zero price, got %+v", q)
	}
}

func TestCalculatePriceInvalidServiceType(t *testing.T) {
	_, err := CalculatePrice(sampleSchedule(), "boat", utils.QuantityFromInt(1))
	if !IsInvalidServiceType(err) {
		t.Fatalf("expected InvalidServiceTypeError, got %v", err)
	}
}

func TestCalculatePriceNegativeQuantity(t *testing.T) {
	_, err := CalculatePrice(sampleSchedule(), "passenger", utils.QuantityFromInt(-1))
	if !IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
