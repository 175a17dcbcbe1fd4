package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	intconfig "transport-backend/internal/config"
	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/metrics"
	"transport-backend/internal/repositories"
	"transport-backend/internal/utils"

	"go.uber.org/zap"
)

// serverOwnedKeys are dropped from a booking payload before decoding.
var serverOwnedKeys = []string{"totalPrice", "paymentStatus", "bookingStatus"}

type BookingService struct {
	BookingRepo  repositories.BookingRepository
	ScheduleRepo repositories.ScheduleRepository
	DB           *sql.DB
	RequestID    string
	Actor        string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepository {
	r := s.BookingRepo
	if r.DB == nil {
		r.DB = s.db()
	}
	if r.Schedule.DB == nil {
		r.Schedule = s.schedules()
	}
	return r
}

func (s BookingService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

// DecodeBookingInput parses a raw booking payload. Price and status keys are
// removed before decoding so a client can never set them.
func DecodeBookingInput(raw []byte) (models.BookingInput, error) {
	var in models.BookingInput

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return in, decodeError(err)
	}
	if fields == nil {
		return in, domain.ValidationError{Field: "body", Msg: "must be a JSON object"}
	}
	for _, k := range serverOwnedKeys {
		delete(fields, k)
	}
	clean, err := json.Marshal(fields)
	if err != nil {
		return in, domain.InternalError{Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(clean))
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, utils.ErrInvalidDecimal) || errors.Is(err, utils.ErrTooPrecise) {
			return in, domain.ValidationError{
				Violations: []domain.FieldViolation{{Field: "packageWeight", Message: err.Error()}},
				Err:        err,
			}
		}
		return in, decodeError(err)
	}
	return in, nil
}

// CreateFromJSON runs the full booking flow on a raw request body.
func (s BookingService) CreateFromJSON(ctx context.Context, raw []byte) (models.Booking, error) {
	in, err := DecodeBookingInput(raw)
	if err != nil {
		metrics.BookingRejections.WithLabelValues(metrics.ReasonValidation).Inc()
		return models.Booking{}, err
	}
	return s.Create(ctx, in)
}

// Create validates in, prices it against its schedule, checks capacity and
// persists the booking together with the seat decrement.
func (s BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	trimBookingInput(&in)

	variant, err := validateBookingInput(in)
	if err != nil {
		metrics.BookingRejections.WithLabelValues(metrics.ReasonValidation).Inc()
		return models.Booking{}, err
	}

	schedule, err := s.schedules().GetByID(ctx, in.ScheduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.BookingRejections.WithLabelValues(metrics.ReasonNotFound).Inc()
			return models.Booking{}, domain.NotFoundError{Resource: "Schedule", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}

	variant.Normalize(&in)

	quote, err := variant.Price(schedule, variant.Quantity(in))
	if err != nil {
		metrics.BookingRejections.WithLabelValues(metrics.ReasonValidation).Inc()
		return models.Booking{}, err
	}

	seats := 0
	if variant.ConsumesSeats() {
		seats = variant.Seats(in)
		if err := domain.CheckAvailability(schedule, variant, seats); err != nil {
			metrics.BookingRejections.WithLabelValues(metrics.ReasonAvailability).Inc()
			return models.Booking{}, err
		}
	}

	b := newBooking(in, quote.TotalPrice)
	if err := s.bookings().CreateWithSeats(ctx, &b, seats); err != nil {
		return models.Booking{}, s.persistError(ctx, err, b, seats)
	}

	metrics.BookingsCreated.WithLabelValues(b.ServiceType).Inc()
	utils.LogEvent(s.RequestID, "booking", "create", "booking created",
		zap.String("booking_id", b.ID),
		zap.String("schedule_id", b.ScheduleID),
		zap.String("service_type", b.ServiceType),
		zap.Int("seats", seats),
		zap.String("total_price", b.TotalPrice.String()),
	)
	return b, nil
}

// persistError classifies a failed insert-and-decrement transaction.
func (s BookingService) persistError(ctx context.Context, err error, b models.Booking, seats int) error {
	switch {
	case errors.Is(err, repositories.ErrSeatsUnavailable):
		metrics.BookingRejections.WithLabelValues(metrics.ReasonSeatRace).Inc()
		available := 0
		if fresh, ferr := s.schedules().GetByID(ctx, b.ScheduleID); ferr == nil && fresh.AvailableSeats != nil {
			available = *fresh.AvailableSeats
		}
		return domain.AvailabilityError{AvailableSeats: available, RequestedSeats: seats}
	case errors.Is(err, repositories.ErrSeatDecrementFailed):
		metrics.BookingRejections.WithLabelValues(metrics.ReasonStoreFailure).Inc()
		utils.LogError(s.RequestID, "booking", "seat_decrement_failed", err,
			zap.String("schedule_id", b.ScheduleID),
			zap.Int("seats", seats),
		)
		return domain.InternalError{Msg: "seat decrement failed", Err: err}
	default:
		metrics.BookingRejections.WithLabelValues(metrics.ReasonStoreFailure).Inc()
		return domain.InternalError{Err: err}
	}
}

func validateBookingInput(in models.BookingInput) (domain.ServiceVariant, error) {
	violations := structViolations(in)

	variant, err := domain.LookupService(in.ServiceType)
	if err != nil {
		if in.ServiceType != "" {
			violations = append(violations, domain.FieldViolation{
				Field:   "serviceType",
				Message: "must be one of passenger, package, car",
			})
		}
	} else {
		violations = append(violations, variant.Validate(in)...)
	}

	if len(violations) > 0 {
		return domain.ServiceVariant{}, domain.ValidationError{Violations: violations}
	}
	return variant, nil
}

func trimBookingInput(in *models.BookingInput) {
	in.ScheduleID = strings.TrimSpace(in.ScheduleID)
	in.ServiceType = strings.ToLower(strings.TrimSpace(in.ServiceType))
	in.CustomerName = utils.NormalizeSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)

	names := in.PassengerNames[:0]
	for _, n := range in.PassengerNames {
		if n = utils.NormalizeSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		names = nil
	}
	in.PassengerNames = names
}

func newBooking(in models.BookingInput, total utils.Money) models.Booking {
	return models.Booking{
		ScheduleID:         in.ScheduleID,
		ServiceType:        in.ServiceType,
		CustomerName:       in.CustomerName,
		CustomerEmail:      in.CustomerEmail,
		CustomerPhone:      in.CustomerPhone,
		PassengerCount:     in.PassengerCount,
		PassengerNames:     in.PassengerNames,
		PackageWeight:      in.PackageWeight,
		PackageDescription: in.PackageDescription,
		CarMake:            in.CarMake,
		CarModel:           in.CarModel,
		CarYear:            in.CarYear,
		CarPlateNumber:     in.CarPlateNumber,
		PickupAddress:      in.PickupAddress,
		DeliveryAddress:    in.DeliveryAddress,
		SpecialRequests:    in.SpecialRequests,
		TotalPrice:         total,
		PaymentStatus:      string(domain.PaymentPending),
		BookingStatus:      string(domain.BookingConfirmed),
	}
}

// List returns all bookings, newest first.
func (s BookingService) List(ctx context.Context) ([]models.Booking, error) {
	out, err := s.bookings().List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s BookingService) Get(ctx context.Context, id string) (models.Booking, error) {
	b, err := s.bookings().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "Booking", Err: err}
		}
		return models.Booking{}, domain.InternalError{Err: err}
	}
	return b, nil
}

// UpdateStatus moves a booking to rawStatus when the transition table allows it.
func (s BookingService) UpdateStatus(ctx context.Context, id, rawStatus string) (models.Booking, error) {
	if strings.TrimSpace(rawStatus) == "" {
		return models.Booking{}, domain.ValidationError{
			Msg:        "Status is required",
			Violations: []domain.FieldViolation{{Field: "status", Message: "is required"}},
		}
	}
	next, err := domain.ParseBookingStatus(rawStatus)
	if err != nil {
		return models.Booking{}, err
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	from := domain.BookingStatus(current.BookingStatus)
	if !domain.CanTransition(from, next) {
		return models.Booking{}, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot change status from %s to %s", from, next),
		}
	}

	ok, err := s.bookings().UpdateStatus(ctx, current.ID, string(from), string(next), utils.NowUTC())
	if err != nil {
		return models.Booking{}, domain.InternalError{Err: err}
	}
	if !ok {
		return models.Booking{}, domain.ConflictError{Resource: "booking", Msg: "status changed concurrently"}
	}

	utils.LogEvent(s.RequestID, "booking", "update_status", "booking status updated",
		zap.String("booking_id", current.ID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.String("actor", s.Actor),
	)
	return s.Get(ctx, current.ID)
}
