// ABOUTME: Prometheus metrics for workouts, storage, and the HTTP API.
// ABOUTME: Collectors are package globals registered once at init.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Session metrics
	WorkoutsCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitday_workouts_completed_total",
			Help: "Total workouts completed",
		},
	)

	WorkoutsAborted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitday_workouts_aborted_total",
			Help: "Total workouts stopped before completion",
		},
	)

	WorkoutSeconds = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fitday_workout_seconds_total",
			Help: "Total planned seconds of completed workouts",
		},
	)

	// Storage metrics
	StorageErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitday_storage_errors_total",
			Help: "Storage gateway failures by operation",
		},
		[]string{"op"},
	)

	// HTTP metrics
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitday_http_requests_total",
			Help: "Total HTTP API requests",
		},
		[]string{"route", "method", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitday_http_request_duration_seconds",
			Help:    "HTTP API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		WorkoutsCompleted,
		WorkoutsAborted,
		WorkoutSeconds,
		StorageErrors,
		RequestsTotal,
		RequestDuration,
	)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
