package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "transport-backend/internal/config"
	intdb "transport-backend/internal/db"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/google/uuid"
)

const routeColumns = `id, from_city, to_city, from_country, to_country,
	distance, estimated_duration, is_active, created_at`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// ListActive returns routes that are still offered.
func (r RouteRepository) ListActive(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE is_active = 1 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByID returns sql.ErrNoRows when the route does not exist.
func (r RouteRepository) GetByID(ctx context.Context, id string) (models.Route, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Route{}, sql.ErrNoRows
	}
	return scanRoute(r.db().QueryRowContext(ctx,
		`SELECT `+routeColumns+` FROM routes WHERE id = ? LIMIT 1`, id))
}

// Create inserts rt, assigning its id and creation time.
func (r RouteRepository) Create(ctx context.Context, rt *models.Route) error {
	if rt == nil {
		return fmt.Errorf("route is nil")
	}
	if rt.ID == "" {
		rt.ID = uuid.NewString()
	}
	if rt.CreatedAt.IsZero() {
		rt.CreatedAt = utils.NowUTC()
	}
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO routes (`+routeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rt.ID,
		rt.FromCity,
		rt.ToCity,
		rt.FromCountry,
		rt.ToCountry,
		intdb.NullInt(rt.Distance),
		intdb.NullInt(rt.EstimatedDuration),
		rt.IsActive,
		rt.CreatedAt,
	)
	return err
}

func scanRoute(sc rowScanner) (models.Route, error) {
	var (
		rt       models.Route
		distance sql.NullInt64
		duration sql.NullInt64
	)
	if err := sc.Scan(
		&rt.ID,
		&rt.FromCity,
		&rt.ToCity,
		&rt.FromCountry,
		&rt.ToCountry,
		&distance,
		&duration,
		&rt.IsActive,
		&rt.CreatedAt,
	); err != nil {
		return models.Route{}, err
	}
	rt.Distance = intdb.IntPtr(distance)
	rt.EstimatedDuration = intdb.IntPtr(duration)
	return rt, nil
}
