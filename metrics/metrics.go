package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_desk",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingTransition = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_desk",
			Name:      "booking_transition_total",
			Help:      "Count of booking status transitions by target status.",
		},
		[]string{"status"},
	)

	availabilityQueries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hotel_desk",
			Name:      "availability_queries_total",
			Help:      "Count of room availability queries.",
		},
	)

	loginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_desk",
			Name:      "login_attempts_total",
			Help:      "Count of login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	httpRequests = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hotel_desk",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	backups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel_desk",
			Name:      "backup_runs_total",
			Help:      "Count of database backup runs by result.",
		},
		[]string{"result"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingTransition, availabilityQueries, loginAttempts, httpRequests, backups)
	})
}

func IncBookingCreated() {
	bookingCreated.Inc()
}

func IncBookingTransition(status string) {
	bookingTransition.WithLabelValues(status).Inc()
}

func IncAvailabilityQuery() {
	availabilityQueries.Inc()
}

func IncLogin(success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	loginAttempts.WithLabelValues(outcome).Inc()
}

func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func IncBackup(ok bool) {
	result := "error"
	if ok {
		result = "ok"
	}
	backups.WithLabelValues(result).Inc()
}
