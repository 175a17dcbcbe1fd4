package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "transport-backend/internal/config"
	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/repositories"
	"transport-backend/internal/utils"
)

// ScheduleService answers route and schedule lookups. It never writes.
type ScheduleService struct {
	RouteRepo    repositories.RouteRepository
	ScheduleRepo repositories.ScheduleRepository
	DB           *sql.DB
}

func (s ScheduleService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s ScheduleService) routes() repositories.RouteRepository {
	if s.RouteRepo.DB != nil {
		return s.RouteRepo
	}
	return repositories.RouteRepository{DB: s.db()}
}

func (s ScheduleService) schedules() repositories.ScheduleRepository {
	if s.ScheduleRepo.DB != nil {
		return s.ScheduleRepo
	}
	return repositories.ScheduleRepository{DB: s.db()}
}

// SearchQuery holds the raw /api/schedules query parameters.
type SearchQuery struct {
	From string
	To   string
	Date string
}

// Search returns bookable schedules for From→To when both are given. When
// either is missing it returns every schedule, any status, newest departure
// first.
func (s ScheduleService) Search(ctx context.Context, q SearchQuery) ([]models.Schedule, error) {
	from := strings.TrimSpace(q.From)
	to := strings.TrimSpace(q.To)
	if from == "" || to == "" {
		return s.ListAll(ctx)
	}

	var fromDate *time.Time
	if d := strings.TrimSpace(q.Date); d != "" {
		t, err := utils.ParseDateParam(d)
		if err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "must be YYYY-MM-DD or RFC3339", Err: err}
		}
		fromDate = &t
	}
	return s.FindAvailable(ctx, from, to, fromDate)
}

// FindAvailable lists scheduled departures on an active route, earliest first.
func (s ScheduleService) FindAvailable(ctx context.Context, fromCity, toCity string, fromDate *time.Time) ([]models.Schedule, error) {
	out, err := s.schedules().FindAvailable(ctx, fromCity, toCity, fromDate)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s ScheduleService) ListAll(ctx context.Context) ([]models.Schedule, error) {
	out, err := s.schedules().ListAll(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s ScheduleService) GetSchedule(ctx context.Context, id string) (models.Schedule, error) {
	sch, err := s.schedules().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Schedule{}, domain.NotFoundError{Resource: "Schedule", Err: err}
		}
		return models.Schedule{}, domain.InternalError{Err: err}
	}
	return sch, nil
}

func (s ScheduleService) ListRoutes(ctx context.Context) ([]models.Route, error) {
	out, err := s.routes().ListActive(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

func (s ScheduleService) GetRoute(ctx context.Context, id string) (models.Route, error) {
	rt, err := s.routes().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Route{}, domain.NotFoundError{Resource: "Route", Err: err}
		}
		return models.Route{}, domain.InternalError{Err: err}
	}
	return rt, nil
}

// RouteSchedules lists one route's schedules, earliest departure first.
func (s ScheduleService) RouteSchedules(ctx context.Context, routeID string) ([]models.Schedule, error) {
	if _, err := s.GetRoute(ctx, routeID); err != nil {
		return nil, err
	}
	out, err := s.schedules().ListByRoute(ctx, routeID)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}
