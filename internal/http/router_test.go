package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	intconfig "transport-backend/internal/config"
	"transport-backend/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var scheduleCols = []string{
	"id", "route_id", "departure_time", "arrival_time", "vehicle_type",
	"max_passengers", "available_seats",
	"base_price_passenger", "base_price_package", "base_price_car",
	"status", "driver_info", "created_at",
}

func withMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	prev := intconfig.DB
	intconfig.DB = db
	t.Cleanup(func() {
		intconfig.DB = prev
		db.Close()
	})
	return mock
}

func do(t *testing.T, r http.Handler, method, path, body string, header ...string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Body.String(), "{") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response: %v (%s)", err, w.Body.String())
		}
	}
	return w, out
}

func TestHealth(t *testing.T) {
	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("unexpected body %v", body)
	}
	if _, err := time.Parse(time.RFC3339, body["timestamp"].(string)); err != nil {
		t.Fatalf("timestamp not RFC3339: %v", err)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header missing")
	}
}

func TestContactMissingMessage(t *testing.T) {
	mock := withMockDB(t)
	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/contact",
		`{"name":"Ana","email":"ana@example.com","subject":"Bags"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	details, _ := body["details"].([]any)
	if len(details) != 1 || details[0].(map[string]any)["field"] != "message" {
		t.Fatalf("unexpected details %v", body["details"])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("no query should run: %v", err)
	}
}

func TestContactCreated(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectExec(`INSERT INTO contact_inquiries`).WillReturnResult(sqlmock.NewResult(0, 1))

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/contact",
		`{"name":"Ana","email":"ana@example.com","subject":"Bags","message":"How many?"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["id"] == "" || body["message"] != "Contact inquiry submitted successfully" {
		t.Fatalf("unexpected body %v", body)
	}
}

func expectSchedule(mock sqlmock.Sqlmock, seats int) {
	dep := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM schedules s WHERE s.id = \?`).WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(scheduleCols).AddRow(
			"s1", "r1", dep, dep.Add(18*time.Hour), "autocar",
			55, seats, "45.00", "8.00", "350.00", "scheduled", nil, dep,
		))
}

func TestCreateBookingNotEnoughSeats(t *testing.T) {
	mock := withMockDB(t)
	expectSchedule(mock, 3)

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/bookings",
		`{"scheduleId":"s1","serviceType":"passenger","customerName":"Ana",
		  "customerEmail":"ana@example.com","customerPhone":"1","passengerCount":4,"totalPrice":"0.01"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["error"] != "Not enough seats available" || body["availableSeats"] != float64(3) || body["requestedSeats"] != float64(4) {
		t.Fatalf("unexpected body %v", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateBookingReturnsServerPrice(t *testing.T) {
	mock := withMockDB(t)
	expectSchedule(mock, 10)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE schedules`).WithArgs(2, "s1", 2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/bookings",
		`{"scheduleId":"s1","serviceType":"passenger","customerName":"Ana",
		  "customerEmail":"ana@example.com","customerPhone":"1","passengerCount":2,"totalPrice":"0.01"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["totalPrice"] != "90.00" || body["bookingStatus"] != "confirmed" || body["paymentStatus"] != "pending" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCalculatePrice(t *testing.T) {
	mock := withMockDB(t)
	expectSchedule(mock, 10)

	r := NewRouter(intconfig.Env{})
	w, body := do(t, r, http.MethodPost, "/api/calculate-price", `{"scheduleId":"s1","serviceType":"package","quantity":12.5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
	if body["totalPrice"] != "100.00" || body["basePrice"] != "8.00" || body["currency"] != "EUR" || body["quantity"] != 12.5 {
		t.Fatalf("unexpected quote %v", body)
	}

	w, body = do(t, r, http.MethodPost, "/api/calculate-price", `{"scheduleId":"s1","serviceType":"passenger","quantity":0}`)
	if w.Code != http.StatusBadRequest || body["error"] != "Missing required fields" {
		t.Fatalf("zero quantity: status = %d, body %v", w.Code, body)
	}

	w, body = do(t, r, http.MethodPost, "/api/calculate-price", `{"scheduleId":"s1","serviceType":"boat","quantity":1}`)
	if w.Code != http.StatusBadRequest || body["error"] != "Invalid service type" {
		t.Fatalf("bad type: status = %d, body %v", w.Code, body)
	}
}

func TestCalculatePriceUnknownSchedule(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`FROM schedules s WHERE s.id = \?`).WillReturnRows(sqlmock.NewRows(scheduleCols))

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/calculate-price",
		`{"scheduleId":"s1","serviceType":"car","quantity":1}`)
	if w.Code != http.StatusNotFound || body["error"] != "Schedule not found" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
}

func TestListSchedulesFiltered(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`INNER JOIN routes r ON r.id = s.route_id[\s\S]+ORDER BY s\.departure_time ASC`).
		WithArgs("Chișinău", "Berlin", "scheduled", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows(scheduleCols))

	w, _ := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/schedules?from=Chi%C8%99in%C4%83u&to=Berlin&date=2025-01-01", "")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListSchedulesBadDate(t *testing.T) {
	w, _ := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/schedules?from=A&to=B&date=tomorrow", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetBookingNotFound(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/bookings/nope", "")
	if w.Code != http.StatusNotFound || body["error"] != "Booking not found" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
}

func TestUpdateBookingStatusRequiresStatus(t *testing.T) {
	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodPatch, "/api/bookings/b1/status", `{}`)
	if w.Code != http.StatusBadRequest || body["error"] != "Status is required" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
}

func TestInternalErrorIsGeneric(t *testing.T) {
	mock := withMockDB(t)
	mock.ExpectQuery(`FROM routes WHERE is_active = 1`).WillReturnError(sqlmock.ErrCancelled)

	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/routes", "")
	if w.Code != http.StatusInternalServerError || body["error"] != "Internal server error" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
}

func TestSeedDisabled(t *testing.T) {
	w, _ := do(t, NewRouter(intconfig.Env{}), http.MethodPost, "/api/seed", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	w, body := do(t, NewRouter(intconfig.Env{}), http.MethodGet, "/api/nothing", "")
	if w.Code != http.StatusNotFound || body["error"] != "Route not found" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	env := intconfig.Env{JWTSecret: "test-secret", AdminUsername: "admin", AdminPasswordHash: string(hash)}
	r := NewRouter(env)

	w, _ := do(t, r, http.MethodGet, "/api/bookings", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("without token: status = %d", w.Code)
	}
	w, _ = do(t, r, http.MethodGet, "/api/bookings", "", "Authorization", "Bearer garbage")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status = %d", w.Code)
	}

	w, body := do(t, r, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status = %d", w.Code)
	}

	w, body = do(t, r, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"s3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body %v", w.Code, body)
	}
	token, _ := body["token"].(string)

	mock := withMockDB(t)
	mock.ExpectQuery(`FROM bookings ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	w, _ = do(t, r, http.MethodGet, "/api/bookings", "", "Authorization", "Bearer "+token)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("with token: status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := NewRouter(intconfig.Env{})
	do(t, r, http.MethodGet, "/api/health", "")

	w, _ := do(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("metrics not exposed: %d", w.Code)
	}
}

func TestPanicReturnsJSONInternalError(t *testing.T) {
	r := NewRouter(intconfig.Env{})
	r.GET("/api/explode", func(c *gin.Context) { panic("boom") })

	w, body := do(t, r, http.MethodGet, "/api/explode", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body["error"] != "Internal server error" || body["code"] != "internal_error" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
	if body["request_id"] == "" || body["request_id"] != w.Header().Get("X-Request-ID") {
		t.Fatalf("request id missing from body %v", body)
	}
}

var bookingCols = []string{
	"id", "schedule_id", "service_type", "customer_name", "customer_email", "customer_phone",
	"passenger_count", "passenger_names", "package_weight", "package_description",
	"car_make", "car_model", "car_year", "car_plate_number",
	"pickup_address", "delivery_address", "special_requests",
	"total_price", "payment_status", "booking_status", "created_at", "updated_at",
}

func expectBookingRow(mock sqlmock.Sqlmock, status string) {
	at := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM bookings WHERE id = \?`).WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			"b1", "s1", "passenger", "Ana Rusu", "ana@example.com", "+37360000000",
			2, nil, nil, nil,
			nil, nil, nil, nil,
			nil, nil, nil,
			"90.00", "pending", status, at, at,
		))
}

func TestStatusChangeLogsAdminSubject(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	utils.SetLogger(zap.New(core))
	t.Cleanup(func() { utils.SetLogger(nil) })

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt error: %v", err)
	}
	r := NewRouter(intconfig.Env{JWTSecret: "test-secret", AdminUsername: "dispatcher", AdminPasswordHash: string(hash)})

	_, body := do(t, r, http.MethodPost, "/api/auth/login", `{"username":"dispatcher","password":"s3cret"}`)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("login returned no token: %v", body)
	}

	mock := withMockDB(t)
	expectBookingRow(mock, "confirmed")
	mock.ExpectExec(`UPDATE bookings`).WillReturnResult(sqlmock.NewResult(0, 1))
	expectBookingRow(mock, "cancelled")

	w, body := do(t, r, http.MethodPatch, "/api/bookings/b1/status", `{"status":"cancelled"}`, "Authorization", "Bearer "+token)
	if w.Code != http.StatusOK || body["bookingStatus"] != "cancelled" {
		t.Fatalf("status = %d, body %v", w.Code, body)
	}

	entries := logs.FilterMessage("booking status updated").All()
	if len(entries) != 1 {
		t.Fatalf("expected one audit line, got %d", len(entries))
	}
	if actor := entries[0].ContextMap()["actor"]; actor != "dispatcher" {
		t.Fatalf("actor = %v, want dispatcher", actor)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
