package domain

import (
	"strings"

	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"
)

type ServiceType string

const (
	ServicePassenger ServiceType = "passenger"
	ServicePackage   ServiceType = "package"
	ServiceCar       ServiceType = "car"
)

// ServiceVariant carries everything that differs between service types.
// Adding a service type means adding one entry to serviceVariants.
type ServiceVariant struct {
	Type ServiceType

	// Rate selects the per-unit price from the schedule's rate table.
	Rate func(models.Schedule) *utils.Money

	// Quantity extracts the billable quantity from a booking.
	Quantity func(models.BookingInput) utils.Quantity

	// Validate returns violations of the service-specific field group.
	Validate func(models.BookingInput) []FieldViolation

	// Normalize fills defaults and clears the field groups of other services.
	Normalize func(*models.BookingInput)

	// Seats returns the seats consumed from Schedule.AvailableSeats. A nil
	// Seats means the service has no capacity dimension.
	Seats func(models.BookingInput) int
}

func (v ServiceVariant) ConsumesSeats() bool { return v.Seats != nil }

// UnitRate is the variant's rate on s, with a missing rate counted as zero.
func (v ServiceVariant) UnitRate(s models.Schedule) utils.Money {
	if r := v.Rate(s); r != nil {
		return *r
	}
	return 0
}

var serviceVariants = map[ServiceType]ServiceVariant{
	ServicePassenger: {
		Type:     ServicePassenger,
		Rate:     func(s models.Schedule) *utils.Money { return s.BasePricePassenger },
		Quantity: func(in models.BookingInput) utils.Quantity { return utils.QuantityFromInt(passengerCount(in)) },
		Validate: validatePassenger,
		Normalize: func(in *models.BookingInput) {
			n := passengerCount(*in)
			in.PassengerCount = &n
			clearPackage(in)
			clearCar(in)
		},
		Seats: passengerCount,
	},
	ServicePackage: {
		Type: ServicePackage,
		Rate: func(s models.Schedule) *utils.Money { return s.BasePricePackage },
		Quantity: func(in models.BookingInput) utils.Quantity {
			if in.PackageWeight == nil {
				return 0
			}
			return *in.PackageWeight
		},
		Validate: validatePackage,
		Normalize: func(in *models.BookingInput) {
			clearPassenger(in)
			clearCar(in)
		},
	},
	ServiceCar: {
		Type:     ServiceCar,
		Rate:     func(s models.Schedule) *utils.Money { return s.BasePriceCar },
		Quantity: func(models.BookingInput) utils.Quantity { return utils.QuantityFromInt(1) },
		Validate: func(models.BookingInput) []FieldViolation { return nil },
		Normalize: func(in *models.BookingInput) {
			clearPassenger(in)
			clearPackage(in)
		},
	},
}

// LookupService resolves a raw service type string to its variant.
func LookupService(raw string) (ServiceVariant, error) {
	v, ok := serviceVariants[ServiceType(strings.TrimSpace(raw))]
	if !ok {
		return ServiceVariant{}, InvalidServiceTypeError{Value: raw}
	}
	return v, nil
}

// passengerCount defaults an unset count to one seat.
func passengerCount(in models.BookingInput) int {
	if in.PassengerCount == nil {
		return 1
	}
	return *in.PassengerCount
}

func validatePassenger(in models.BookingInput) []FieldViolation {
	var out []FieldViolation
	if in.PassengerCount != nil && *in.PassengerCount < 1 {
		out = append(out, FieldViolation{Field: "passengerCount", Message: "must be at least 1"})
	}
	if len(in.PassengerNames) > passengerCount(in) {
		out = append(out, FieldViolation{Field: "passengerNames", Message: "more names than passengers"})
	}
	return out
}

func validatePackage(in models.BookingInput) []FieldViolation {
	if in.PackageWeight == nil {
		return []FieldViolation{{Field: "packageWeight", Message: "required for package bookings"}}
	}
	if *in.PackageWeight <= 0 {
		return []FieldViolation{{Field: "packageWeight", Message: "must be greater than 0"}}
	}
	return nil
}

func clearPassenger(in *models.BookingInput) {
	in.PassengerCount = nil
	in.PassengerNames = nil
}

func clearPackage(in *models.BookingInput) {
	in.PackageWeight = nil
	in.PackageDescription = nil
}

func clearCar(in *models.BookingInput) {
	in.CarMake = nil
	in.CarModel = nil
	in.CarYear = nil
	in.CarPlateNumber = nil
}
