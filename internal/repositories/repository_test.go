package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"transport-backend/internal/domain/models"
	"transport-backend/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var scheduleCols = []string{
	"id", "route_id", "departure_time", "arrival_time", "vehicle_type",
	"max_passengers", "available_seats",
	"base_price_passenger", "base_price_package", "base_price_car",
	"status", "driver_info", "created_at",
}

func TestScheduleFindAvailableFiltersAndScans(t *testing.T) {
	db, mock := newMock(t)
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INNER JOIN routes r ON r.id = s.route_id[\s\S]+s\.departure_time >= \?\s+ORDER BY s\.departure_time ASC, s\.id ASC`).
		WithArgs("Chișinău", "Berlin", "scheduled", from).
		WillReturnRows(sqlmock.NewRows(scheduleCols).AddRow(
			"s1", "r1", dep, dep.Add(18*time.Hour), "autocar",
			55, 12, "45.00", "8.00", nil,
			"scheduled", `{"primary":"Ion Popescu","secondary":"Vasile Ionescu"}`, dep,
		))

	repo := ScheduleRepository{DB: db}
	out, err := repo.FindAvailable(context.Background(), "Chișinău", "Berlin", &from)
	if err != nil {
		t.Fatalf("FindAvailable error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 schedule, got %d", len(out))
	}
	s := out[0]
	if s.AvailableSeats == nil || *s.AvailableSeats != 12 {
		t.Fatalf("available seats not scanned: %+v", s.AvailableSeats)
	}
	if s.BasePricePassenger == nil || s.BasePricePassenger.String() != "45.00" {
		t.Fatalf("passenger rate not scanned")
	}
	if s.BasePriceCar != nil {
		t.Fatalf("NULL car rate should stay nil")
	}
	if s.DriverInfo == nil || s.DriverInfo.Primary != "Ion Popescu" {
		t.Fatalf("driver info not decoded: %+v", s.DriverInfo)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleFindAvailableWithoutDate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`WHERE r.from_city = \? AND r.to_city = \? AND r.is_active = 1 AND s.status = \?\s+ORDER BY s\.departure_time ASC, s\.id ASC`).
		WithArgs("A", "B", "scheduled").
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	out, err := ScheduleRepository{DB: db}.FindAvailable(context.Background(), "A", "B", nil)
	if err != nil {
		t.Fatalf("FindAvailable error: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReserveSeatsConditionalUpdate(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`UPDATE schedules\s+SET available_seats = available_seats - \?\s+WHERE id = \? AND available_seats >= \?`).
		WithArgs(4, "s1", 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := ScheduleRepository{DB: db}.ReserveSeats(context.Background(), nil, "s1", 4)
	if err != nil {
		t.Fatalf("ReserveSeats error: %v", err)
	}
	if ok {
		t.Fatalf("expected reservation to fail when no row matched")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func sampleBooking() *models.Booking {
	n := 2
	return &models.Booking{
		ScheduleID:     "s1",
		ServiceType:    "passenger",
		CustomerName:   "Ana",
		CustomerEmail:  "ana@example.com",
		CustomerPhone:  "+37360000000",
		PassengerCount: &n,
		PassengerNames: []string{"Ana", "Dan"},
		TotalPrice:     utils.Money(9000),
		PaymentStatus:  "pending",
		BookingStatus:  "confirmed",
	}
}

func TestCreateWithSeatsCommits(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules`).WithArgs(2, "s1", 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b := sampleBooking()
	if err := (BookingRepository{DB: db}).CreateWithSeats(context.Background(), b, 2); err != nil {
		t.Fatalf("CreateWithSeats error: %v", err)
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Fatalf("id and created_at should be assigned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithSeatsRollsBackWhenSeatsGone(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := (BookingRepository{DB: db}).CreateWithSeats(context.Background(), sampleBooking(), 2)
	if !errors.Is(err, ErrSeatsUnavailable) {
		t.Fatalf("expected ErrSeatsUnavailable, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithSeatsWrapsDecrementFailure(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules`).WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := (BookingRepository{DB: db}).CreateWithSeats(context.Background(), sampleBooking(), 2)
	if !errors.Is(err, ErrSeatDecrementFailed) {
		t.Fatalf("expected ErrSeatDecrementFailed, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateWithoutSeatsSkipsDecrement(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	b := sampleBooking()
	b.ServiceType = "car"
	b.PassengerCount = nil
	b.PassengerNames = nil
	if err := (BookingRepository{DB: db}).CreateWithSeats(context.Background(), b, 0); err != nil {
		t.Fatalf("CreateWithSeats error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingUpdateStatusGuardsCurrentStatus(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(`UPDATE bookings\s+SET booking_status = \?, updated_at = \?\s+WHERE id = \? AND booking_status = \?`).
		WithArgs("cancelled", at, "b1", "confirmed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := BookingRepository{DB: db}.UpdateStatus(context.Background(), "b1", "confirmed", "cancelled", at)
	if err != nil || !ok {
		t.Fatalf("UpdateStatus = %v, %v", ok, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingGetByIDScansOptionalGroups(t *testing.T) {
	db, mock := newMock(t)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	cols := []string{
		"id", "schedule_id", "service_type", "customer_name", "customer_email", "customer_phone",
		"passenger_count", "passenger_names", "package_weight", "package_description",
		"car_make", "car_model", "car_year", "car_plate_number",
		"pickup_address", "delivery_address", "special_requests",
		"total_price", "payment_status", "booking_status", "created_at", "updated_at",
	}
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"b1", "s1", "package", "Ana", "ana@example.com", "+373",
			nil, nil, "12.50", "books",
			nil, nil, nil, nil,
			"Str. 1", "Berlin", nil,
			"100.00", "pending", "confirmed", now, now,
		))

	b, err := BookingRepository{DB: db}.GetByID(context.Background(), "b1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if b.PackageWeight == nil || b.PackageWeight.String() != "12.5" {
		t.Fatalf("package weight not scanned: %v", b.PackageWeight)
	}
	if b.TotalPrice.String() != "100.00" {
		t.Fatalf("total price = %s", b.TotalPrice)
	}
	if b.PassengerCount != nil || b.CarMake != nil {
		t.Fatalf("inactive groups should be nil")
	}
}

func TestBookingGetByIDMissing(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	if _, err := (BookingRepository{DB: db}).GetByID(context.Background(), "nope"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
}

func TestRouteListActive(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`FROM routes WHERE is_active = 1`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "from_city", "to_city", "from_country", "to_country",
			"distance", "estimated_duration", "is_active", "created_at",
		}).AddRow("r1", "Chișinău", "Berlin", "Moldova", "Germany", 1200, 18, true, now))

	out, err := RouteRepository{DB: db}.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(out) != 1 || out[0].Distance == nil || *out[0].Distance != 1200 {
		t.Fatalf("unexpected routes %+v", out)
	}
}

func TestInquiryCreateAssignsID(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO contact_inquiries`).
		WithArgs(sqlmock.AnyArg(), "Ana", "ana@example.com", nil, "Hi", "Question", "new", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := &models.ContactInquiry{Name: "Ana", Email: "ana@example.com", Subject: "Hi", Message: "Question", Status: "new"}
	if err := (InquiryRepository{DB: db}).Create(context.Background(), in); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if in.ID == "" {
		t.Fatalf("id should be assigned")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleListAllNewestFirst(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`FROM schedules s ORDER BY s\.departure_time DESC, s\.id ASC`).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	if _, err := (ScheduleRepository{DB: db}).ListAll(context.Background()); err != nil {
		t.Fatalf("ListAll error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInquiryListNewestFirst(t *testing.T) {
	db, mock := newMock(t)
	newer := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	mock.ExpectQuery(`FROM contact_inquiries ORDER BY created_at DESC, id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "phone", "subject", "message", "status", "created_at",
		}).
			AddRow("i2", "Dan", "dan@example.com", "+37360000001", "Car", "Trailer?", "new", newer).
			AddRow("i1", "Ana", "ana@example.com", nil, "Bags", "How many?", "resolved", older))

	out, err := InquiryRepository{DB: db}.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "i2" || out[1].ID != "i1" {
		t.Fatalf("unexpected order %+v", out)
	}
	if out[1].Phone != nil {
		t.Fatalf("NULL phone should stay nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
