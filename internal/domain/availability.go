package domain

import "transport-backend/internal/domain/models"

// CheckAvailability verifies that s still has requested seats for a service
// that consumes seats. Services without a capacity dimension always pass.
func CheckAvailability(s models.Schedule, v ServiceVariant, requested int) error {
	if !v.ConsumesSeats() {
		return nil
	}
	if requested <= 0 {
		requested = 1
	}
	if s.AvailableSeats == nil {
		return AvailabilityError{AvailableSeats: 0, RequestedSeats: requested}
	}
	if *s.AvailableSeats < requested {
		return AvailabilityError{AvailableSeats: *s.AvailableSeats, RequestedSeats: requested}
	}
	return nil
}
