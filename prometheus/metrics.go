package prometheus

import (
	"net/http"
	"time"

	"github.com/estroop3-gif/second-watch-network-sub006/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Quota engine metrics
	TierOperationsCounter     prometheus.CounterVec
	OverrideOperationsCounter prometheus.CounterVec
	RecalculationsCounter     prometheus.CounterVec
	ReportsCounter            prometheus.Counter
	NearLimitResourcesCounter prometheus.CounterVec
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	TierOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tier_operations_total",
			Help: "Total number of tier catalog operations",
		},
		[]string{"operation"},
	)

	OverrideOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_override_operations_total",
			Help: "Total number of limit override operations",
		},
		[]string{"operation"},
	)

	RecalculationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_usage_recalculations_total",
			Help: "Total number of usage recalculations by outcome",
		},
		[]string{"outcome"},
	)

	ReportsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_entitlement_reports_total",
			Help: "Total number of entitlement reports generated",
		},
	)

	NearLimitResourcesCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_near_limit_resources_total",
			Help: "Total number of near-limit resources seen in reports",
		},
		[]string{"resource"},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordTierOperation increments the counter for tier catalog operations
func RecordTierOperation(operation string) {
	TierOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordOverrideOperation increments the counter for override operations
func RecordOverrideOperation(operation string) {
	OverrideOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordRecalculation increments the recalculation counter for an outcome
func RecordRecalculation(outcome string) {
	RecalculationsCounter.WithLabelValues(outcome).Inc()
}

// RecordNearLimitResource increments the near-limit counter for a resource
func RecordNearLimitResource(resource string) {
	NearLimitResourcesCounter.WithLabelValues(resource).Inc()
}

// GetPrometheusHandler returns an HTTP handler for exposing Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}
