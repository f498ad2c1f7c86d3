package metrics

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Domain operation metrics
	QuoteOperationsCounter *prometheus.CounterVec
	ClaimOperationsCounter *prometheus.CounterVec
)

func init() {
	prefix := os.Getenv("METRICS_PREFIX")
	if prefix == "" {
		prefix = "moveapp"
	}

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of login attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful logins",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of failed logins",
		},
	)

	QuoteOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_quote_operations_total",
			Help: "Total number of quote operations",
		},
		[]string{"operation"},
	)

	ClaimOperationsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_claim_operations_total",
			Help: "Total number of insurance claim operations",
		},
		[]string{"operation"},
	)
}

// RecordQuoteOperation increments the quote operation counter.
func RecordQuoteOperation(operation string) {
	QuoteOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordClaimOperation increments the claim operation counter.
func RecordClaimOperation(operation string) {
	ClaimOperationsCounter.WithLabelValues(operation).Inc()
}
