package metrics

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaxcare/vaxcare-backend/internal/health"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "vaxcare",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	LoginsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "logins_total",
		Help:      "Total login attempts, by outcome.",
	}, []string{"outcome"})

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "registrations_total",
		Help:      "Total accounts created.",
	})

	// Reminder engine metrics

	ReminderCycleDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vaxcare",
		Name:      "reminder_cycle_duration_seconds",
		Help:      "Time taken for one reminder sweep.",
		Buckets:   prometheus.DefBuckets,
	})

	RemindersScannedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "reminders_scanned_total",
		Help:      "Total due vaccinations examined by the reminder engine.",
	})

	RemindersCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "reminders_created_total",
		Help:      "Total reminder notifications created.",
	})

	RemindersFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vaxcare",
		Name:      "reminders_failed_total",
		Help:      "Total reminders that failed to store or send.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		LoginsTotal,
		RegistrationsTotal,
		ReminderCycleDuration,
		RemindersScannedTotal,
		RemindersCreatedTotal,
		RemindersFailedTotal,
	)
}

// NewServer serves Prometheus metrics plus liveness and readiness probes.
func NewServer(addr string, checker *health.Checker) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Liveness(r.Context()))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, checker.Readiness(r.Context()))
	})
	return &http.Server{Addr: addr, Handler: mux}
}

func writeHealth(w http.ResponseWriter, result health.HealthResult) {
	w.Header().Set("Content-Type", "application/json")
	if result.Status != "up" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(result)
}
