package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	intconfig "transport-backend/internal/config"
	intdb "transport-backend/internal/db"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/google/uuid"
)

var (
	// ErrSeatsUnavailable means the conditional seat decrement matched no row.
	ErrSeatsUnavailable = errors.New("seats no longer available")
	// ErrSeatDecrementFailed wraps a database failure during the decrement.
	ErrSeatDecrementFailed = errors.New("seat decrement failed")
)

const bookingColumns = `id, schedule_id, service_type,
	customer_name, customer_email, customer_phone,
	passenger_count, passenger_names,
	package_weight, package_description,
	car_make, car_model, car_year, car_plate_number,
	pickup_address, delivery_address, special_requests,
	total_price, payment_status, booking_status, created_at, updated_at`

type BookingRepository struct {
	DB       *sql.DB
	Schedule ScheduleRepository
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// CreateWithSeats inserts b and, when seats > 0, takes that many seats from
// its schedule in the same transaction. Neither change is kept unless both
// succeed.
func (r BookingRepository) CreateWithSeats(ctx context.Context, b *models.Booking, seats int) error {
	if b == nil {
		return fmt.Errorf("booking is nil")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := utils.NowUTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = b.CreatedAt

	tx, err := r.db().BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertBooking(ctx, tx, b); err != nil {
		return err
	}

	if seats > 0 {
		sched := r.Schedule
		if sched.DB == nil {
			sched.DB = r.DB
		}
		ok, err := sched.ReserveSeats(ctx, tx, b.ScheduleID, seats)
		if err != nil {
			return errors.Join(ErrSeatDecrementFailed, err)
		}
		if !ok {
			return ErrSeatsUnavailable
		}
	}

	return tx.Commit()
}

func insertBooking(ctx context.Context, q intdb.Querier, b *models.Booking) error {
	var names any
	if len(b.PassengerNames) > 0 {
		raw, err := json.Marshal(b.PassengerNames)
		if err != nil {
			return err
		}
		names = string(raw)
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.ID,
		b.ScheduleID,
		b.ServiceType,
		b.CustomerName,
		b.CustomerEmail,
		b.CustomerPhone,
		intdb.NullInt(b.PassengerCount),
		names,
		intdb.NullQuantity(b.PackageWeight),
		intdb.NullString(b.PackageDescription),
		intdb.NullString(b.CarMake),
		intdb.NullString(b.CarModel),
		intdb.NullInt(b.CarYear),
		intdb.NullString(b.CarPlateNumber),
		intdb.NullString(b.PickupAddress),
		intdb.NullString(b.DeliveryAddress),
		intdb.NullString(b.SpecialRequests),
		b.TotalPrice.String(),
		b.PaymentStatus,
		b.BookingStatus,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

// List returns every booking, newest first.
func (r BookingRepository) List(ctx context.Context) ([]models.Booking, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the booking does not exist.
func (r BookingRepository) GetByID(ctx context.Context, id string) (models.Booking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Booking{}, sql.ErrNoRows
	}
	return scanBooking(r.db().QueryRowContext(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = ? LIMIT 1`, id))
}

// UpdateStatus moves a booking from one status to another. It reports false
// when the row no longer holds the expected status.
func (r BookingRepository) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	res, err := r.db().ExecContext(ctx, `
		UPDATE bookings
		SET booking_status = ?, updated_at = ?
		WHERE id = ? AND booking_status = ?
	`, to, at, id, from)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func scanBooking(sc rowScanner) (models.Booking, error) {
	var (
		b                         models.Booking
		paxCount, carYear         sql.NullInt64
		paxNames, weight, pkgDesc sql.NullString
		carMake, carModel, plate  sql.NullString
		pickup, delivery, special sql.NullString
		total                     string
	)
	if err := sc.Scan(
		&b.ID,
		&b.ScheduleID,
		&b.ServiceType,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&paxCount,
		&paxNames,
		&weight,
		&pkgDesc,
		&carMake,
		&carModel,
		&carYear,
		&plate,
		&pickup,
		&delivery,
		&special,
		&total,
		&b.PaymentStatus,
		&b.BookingStatus,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return models.Booking{}, err
	}

	var err error
	if b.TotalPrice, err = utils.ParseMoney(total); err != nil {
		return models.Booking{}, fmt.Errorf("total_price: %w", err)
	}
	if b.PackageWeight, err = intdb.QuantityPtr(weight); err != nil {
		return models.Booking{}, fmt.Errorf("package_weight: %w", err)
	}
	b.PassengerCount = intdb.IntPtr(paxCount)
	b.CarYear = intdb.IntPtr(carYear)
	b.PackageDescription = intdb.StringPtr(pkgDesc)
	b.CarMake = intdb.StringPtr(carMake)
	b.CarModel = intdb.StringPtr(carModel)
	b.CarPlateNumber = intdb.StringPtr(plate)
	b.PickupAddress = intdb.StringPtr(pickup)
	b.DeliveryAddress = intdb.StringPtr(delivery)
	b.SpecialRequests = intdb.StringPtr(special)

	if paxNames.Valid && strings.TrimSpace(paxNames.String) != "" {
		_ = json.Unmarshal([]byte(paxNames.String), &b.PassengerNames)
	}
	return b, nil
}
