package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		},
	)

	BookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Bookings persisted, by service type",
		},
		[]string{"service_type"},
	)

	BookingRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_rejections_total",
			Help: "Booking requests refused, by reason",
		},
		[]string{"reason"},
	)

	ContactInquiries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_inquiries_total",
			Help: "Contact inquiries recorded",
		},
	)
)

// Rejection reasons used with BookingRejections.
const (
	ReasonValidation   = "validation"
	ReasonNotFound     = "schedule_not_found"
	ReasonAvailability = "availability"
	ReasonSeatRace     = "seat_race"
	ReasonStoreFailure = "store_failure"
)
