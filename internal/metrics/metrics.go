package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	definitionLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "definition_lookups_total",
			Help: "Total number of definition lookups by cache outcome",
		},
		[]string{"cache_hit"},
	)

	definitionSourceCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "definition_source_calls_total",
			Help: "Total number of calls to definition sources",
		},
		[]string{"source", "status"},
	)

	definitionSourceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "definition_source_duration_seconds",
			Help:    "Definition source call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
		},
		[]string{"source"},
	)
)

// RecordLookup records whether a definition was served from the cache.
func RecordLookup(cacheHit bool) {
	hit := "false"
	if cacheHit {
		hit = "true"
	}
	definitionLookupsTotal.WithLabelValues(hit).Inc()
}

// RecordSourceCall records the outcome and latency of one source call.
func RecordSourceCall(source string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	definitionSourceCallsTotal.WithLabelValues(source, status).Inc()
	definitionSourceDuration.WithLabelValues(source).Observe(duration.Seconds())
}
