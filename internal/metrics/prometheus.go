package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all the Prometheus metrics for our service
type Metrics struct {
	// Request counters
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Business logic metrics
	ImpressionsRecorded *prometheus.CounterVec
	ClicksRecorded      *prometheus.CounterVec
	AdSlotsPlaced       prometheus.Counter
	PrerollsServed      *prometheus.CounterVec
	DatabaseQueries     *prometheus.CounterVec
	DatabaseErrors      *prometheus.CounterVec

	// Health check metrics
	HealthCheckStatus *prometheus.GaugeVec
}

// NewPrometheusMetrics creates and registers all Prometheus metrics
func NewPrometheusMetrics() *Metrics {
	metrics := &Metrics{
		// HTTP request metrics
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "adweave_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adweave_http_requests_in_flight",
				Help: "Current number of HTTP requests being processed",
			},
			[]string{"method", "endpoint"},
		),

		// Business metrics
		ImpressionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_impressions_recorded_total",
				Help: "Total number of ad impressions recorded",
			},
			[]string{"result"},
		),

		ClicksRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_clicks_recorded_total",
				Help: "Total number of ad clicks recorded",
			},
			[]string{"result"},
		),

		AdSlotsPlaced: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "adweave_ad_slots_placed_total",
				Help: "Total number of ad slots interleaved into feeds",
			},
		),

		PrerollsServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_prerolls_served_total",
				Help: "Total number of pre-roll decisions",
			},
			[]string{"outcome"},
		),

		DatabaseQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_database_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table"},
		),

		DatabaseErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "adweave_database_errors_total",
				Help: "Total number of database errors",
			},
			[]string{"operation", "error_type"},
		),

		// Health check metrics
		HealthCheckStatus: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "adweave_health_check_status",
				Help: "Health check status (1 = healthy, 0 = unhealthy)",
			},
			[]string{"check_type"},
		),
	}

	return metrics
}

// RecordHTTPRequest records an HTTP request with its duration and status
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration float64) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration)
}

// RecordImpression records an impression event outcome ("recorded" or "dropped")
func (m *Metrics) RecordImpression(result string) {
	m.ImpressionsRecorded.WithLabelValues(result).Inc()
}

// RecordClick records a click event outcome ("recorded" or "dropped")
func (m *Metrics) RecordClick(result string) {
	m.ClicksRecorded.WithLabelValues(result).Inc()
}

// RecordAdSlots records ad slots placed into a feed
func (m *Metrics) RecordAdSlots(count int) {
	m.AdSlotsPlaced.Add(float64(count))
}

// RecordPreroll records a pre-roll decision ("served" or "skipped_empty")
func (m *Metrics) RecordPreroll(outcome string) {
	m.PrerollsServed.WithLabelValues(outcome).Inc()
}

// RecordDatabaseQuery records a database query
func (m *Metrics) RecordDatabaseQuery(operation, table string) {
	m.DatabaseQueries.WithLabelValues(operation, table).Inc()
}

// RecordDatabaseError records a database error
func (m *Metrics) RecordDatabaseError(operation, errorType string) {
	m.DatabaseErrors.WithLabelValues(operation, errorType).Inc()
}

// SetHealthCheckStatus sets the health check status
func (m *Metrics) SetHealthCheckStatus(checkType string, healthy bool) {
	status := 0.0
	if healthy {
		status = 1.0
	}
	m.HealthCheckStatus.WithLabelValues(checkType).Set(status)
}

// IncRequestsInFlight increments the in-flight requests counter
func (m *Metrics) IncRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Inc()
}

// DecRequestsInFlight decrements the in-flight requests counter
func (m *Metrics) DecRequestsInFlight(method, endpoint string) {
	m.HTTPRequestsInFlight.WithLabelValues(method, endpoint).Dec()
}
