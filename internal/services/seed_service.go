package services

import (
	"context"
	"database/sql"
	"time"

	intconfig "transport-backend/internal/config"
	"transport-backend/internal/domain"
	"transport-backend/internal/domain/models"
	"transport-backend/internal/repositories"
	"transport-backend/internal/utils"

	"go.uber.org/zap"
)

type SeedResult struct {
	Routes    int `json:"routes"`
	Schedules int `json:"schedules"`
}

// SeedService loads demo routes and two upcoming departures.
type SeedService struct {
	RouteRepo    repositories.RouteRepository
	ScheduleRepo repositories.ScheduleRepository
	DB           *sql.DB
	RequestID    string
	Now          func() time.Time
}

func (s SeedService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s SeedService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return utils.NowUTC()
}

type seedRoute struct {
	toCity, toCountry string
	distance, hours   int
}

var seedRoutes = []seedRoute{
	{"Berlin", "Germania", 1200, 18},
	{"Amsterdam", "Olanda", 1400, 20},
	{"Brussels", "Belgia", 1350, 19},
}

type seedSchedule struct {
	route              int
	dayOffset          int
	hour               int
	travelHours        int
	passenger, pkg     string
	car                string
	primary, secondary string
}

var seedSchedules = []seedSchedule{
	{0, 1, 8, 18, "45.00", "8.00", "350.00", "Ion Popescu", "Vasile Ionescu"},
	{1, 2, 9, 20, "50.00", "9.00", "380.00", "Gheorghe Munteanu", "Mihai Ciobanu"},
}

func (s SeedService) Seed(ctx context.Context) (SeedResult, error) {
	routeRepo := s.RouteRepo
	if routeRepo.DB == nil {
		routeRepo.DB = s.db()
	}
	scheduleRepo := s.ScheduleRepo
	if scheduleRepo.DB == nil {
		scheduleRepo.DB = s.db()
	}

	var res SeedResult
	routeIDs := make([]string, 0, len(seedRoutes))
	for _, sr := range seedRoutes {
		distance, hours := sr.distance, sr.hours
		rt := models.Route{
			FromCity:          "Chișinău",
			ToCity:            sr.toCity,
			FromCountry:       "Moldova",
			ToCountry:         sr.toCountry,
			Distance:          &distance,
			EstimatedDuration: &hours,
			IsActive:          true,
		}
		if err := routeRepo.Create(ctx, &rt); err != nil {
			return res, domain.InternalError{Msg: "seed routes", Err: err}
		}
		routeIDs = append(routeIDs, rt.ID)
		res.Routes++
	}

	now := s.now()
	for _, ss := range seedSchedules {
		dep := utils.AtClock(now.AddDate(0, 0, ss.dayOffset), ss.hour, 0)
		sch := models.Schedule{
			RouteID:            routeIDs[ss.route],
			DepartureTime:      dep,
			ArrivalTime:        dep.Add(time.Duration(ss.travelHours) * time.Hour),
			VehicleType:        "autocar",
			MaxPassengers:      intRef(55),
			AvailableSeats:     intRef(55),
			BasePricePassenger: mustMoney(ss.passenger),
			BasePricePackage:   mustMoney(ss.pkg),
			BasePriceCar:       mustMoney(ss.car),
			Status:             string(domain.ScheduleScheduled),
			DriverInfo:         &models.DriverInfo{Primary: ss.primary, Secondary: ss.secondary},
		}
		if err := scheduleRepo.Create(ctx, &sch); err != nil {
			return res, domain.InternalError{Msg: "seed schedules", Err: err}
		}
		res.Schedules++
	}

	utils.LogEvent(s.RequestID, "seed", "seed", "sample data created",
		zap.Int("routes", res.Routes),
		zap.Int("schedules", res.Schedules),
	)
	return res, nil
}

func intRef(n int) *int { return &n }

func mustMoney(s string) *utils.Money {
	m, err := utils.ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return &m
}
