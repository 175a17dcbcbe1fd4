package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	intconfig "transport-backend/internal/config"
	intdb "transport-backend/internal/db"
	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/google/uuid"
)

const scheduleColumns = `s.id, s.route_id, s.departure_time, s.arrival_time, s.vehicle_type,
	s.max_passengers, s.available_seats,
	s.base_price_passenger, s.base_price_package, s.base_price_car,
	s.status, s.driver_info, s.created_at`

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListAll returns every schedule regardless of status, latest departure first.
func (r ScheduleRepository) ListAll(ctx context.Context) ([]models.Schedule, error) {
	return r.query(ctx, `SELECT `+scheduleColumns+` FROM schedules s ORDER BY s.departure_time DESC, s.id ASC`)
}

// ListByRoute returns one route's schedules, earliest departure first.
func (r ScheduleRepository) ListByRoute(ctx context.Context, routeID string) ([]models.Schedule, error) {
	return r.query(ctx, `SELECT `+scheduleColumns+` FROM schedules s
		WHERE s.route_id = ?
		ORDER BY s.departure_time ASC, s.id ASC`, strings.TrimSpace(routeID))
}

// FindAvailable returns bookable schedules on the active fromCity→toCity route,
// departing at or after fromDate when given, earliest departure first.
func (r ScheduleRepository) FindAvailable(ctx context.Context, fromCity, toCity string, fromDate *time.Time) ([]models.Schedule, error) {
	where := []string{
		"r.from_city = ?",
		"r.to_city = ?",
		"r.is_active = 1",
		"s.status = ?",
	}
	args := []any{fromCity, toCity, string(domain.ScheduleScheduled)}
	if fromDate != nil {
		where = append(where, "s.departure_time >= ?")
		args = append(args, fromDate.UTC())
	}

	query := fmt.Sprintf(`SELECT %s FROM schedules s
		INNER JOIN routes r ON r.id = s.route_id
		WHERE %s
		ORDER BY s.departure_time ASC, s.id ASC`, scheduleColumns, strings.Join(where, " AND "))
	return r.query(ctx, query, args...)
}

// GetByID returns sql.ErrNoRows when the schedule does not exist.
func (r ScheduleRepository) GetByID(ctx context.Context, id string) (models.Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Schedule{}, sql.ErrNoRows
	}
	return scanSchedule(r.db().QueryRowContext(ctx,
		`SELECT `+scheduleColumns+` FROM schedules s WHERE s.id = ? LIMIT 1`, id))
}

// Create inserts s, assigning its id and creation time.
func (r ScheduleRepository) Create(ctx context.Context, s *models.Schedule) error {
	if s == nil {
		return fmt.Errorf("schedule is nil")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = string(domain.ScheduleScheduled)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = utils.NowUTC()
	}

	var driver any
	if s.DriverInfo != nil {
		b, err := json.Marshal(s.DriverInfo)
		if err != nil {
			return err
		}
		driver = string(b)
	}

	_, err := r.db().ExecContext(ctx, `
		INSERT INTO schedules (
			id, route_id, departure_time, arrival_time, vehicle_type,
			max_passengers, available_seats,
			base_price_passenger, base_price_package, base_price_car,
			status, driver_info, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.ID,
		s.RouteID,
		s.DepartureTime.UTC(),
		s.ArrivalTime.UTC(),
		s.VehicleType,
		intdb.NullInt(s.MaxPassengers),
		intdb.NullInt(s.AvailableSeats),
		intdb.NullMoney(s.BasePricePassenger),
		intdb.NullMoney(s.BasePricePackage),
		intdb.NullMoney(s.BasePriceCar),
		s.Status,
		driver,
		s.CreatedAt,
	)
	return err
}

// ReserveSeats takes n seats from the schedule in a single conditional update.
// It reports false when fewer than n seats remain, leaving the row untouched.
func (r ScheduleRepository) ReserveSeats(ctx context.Context, q intdb.Querier, scheduleID string, n int) (bool, error) {
	if q == nil {
		q = r.db()
	}
	res, err := q.ExecContext(ctx, `
		UPDATE schedules
		SET available_seats = available_seats - ?
		WHERE id = ? AND available_seats >= ?
	`, n, scheduleID, n)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r ScheduleRepository) query(ctx context.Context, query string, args ...any) ([]models.Schedule, error) {
	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSchedule(sc rowScanner) (models.Schedule, error) {
	var (
		s                    models.Schedule
		maxPax, seats        sql.NullInt64
		pricePax, pricePkg   sql.NullString
		priceCar, driverInfo sql.NullString
	)
	if err := sc.Scan(
		&s.ID,
		&s.RouteID,
		&s.DepartureTime,
		&s.ArrivalTime,
		&s.VehicleType,
		&maxPax,
		&seats,
		&pricePax,
		&pricePkg,
		&priceCar,
		&s.Status,
		&driverInfo,
		&s.CreatedAt,
	); err != nil {
		return models.Schedule{}, err
	}

	s.MaxPassengers = intdb.IntPtr(maxPax)
	s.AvailableSeats = intdb.IntPtr(seats)

	var err error
	if s.BasePricePassenger, err = intdb.MoneyPtr(pricePax); err != nil {
		return models.Schedule{}, fmt.Errorf("base_price_passenger: %w", err)
	}
	if s.BasePricePackage, err = intdb.MoneyPtr(pricePkg); err != nil {
		return models.Schedule{}, fmt.Errorf("base_price_package: %w", err)
	}
	if s.BasePriceCar, err = intdb.MoneyPtr(priceCar); err != nil {
		return models.Schedule{}, fmt.Errorf("base_price_car: %w", err)
	}

	if driverInfo.Valid && strings.TrimSpace(driverInfo.String) != "" {
		var d models.DriverInfo
		if err := json.Unmarshal([]byte(driverInfo.String), &d); err == nil {
			s.DriverInfo = &d
		}
	}
	return s, nil
}
