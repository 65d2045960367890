package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the API
type Metrics struct {
	// HTTP request metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	// Conversion metrics
	conversionsTotal   *prometheus.CounterVec
	conversionDuration *prometheus.HistogramVec
	conversionBytes    *prometheus.HistogramVec
	warningsTotal      *prometheus.CounterVec
	anomaliesTotal     *prometheus.CounterVec

	// Archive metrics
	archiveOperationsTotal *prometheus.CounterVec
	archiveEntries         prometheus.Gauge

	authRequestsTotal *prometheus.CounterVec
	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyparser_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		httpRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "polyparser_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),

		conversionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_conversions_total",
				Help: "Total number of decode and encode operations",
			},
			[]string{"kind", "direction", "status"},
		),

		conversionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyparser_conversion_duration_seconds",
				Help:    "Decode and encode duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"kind", "direction"},
		),

		conversionBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "polyparser_conversion_input_bytes",
				Help:    "Size of conversion inputs in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 10),
			},
			[]string{"kind", "direction"},
		),

		warningsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_decode_warnings_total",
				Help: "Total number of warnings raised while decoding",
			},
			[]string{"kind"},
		),

		anomaliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_decode_anomalies_total",
				Help: "Total number of out-of-range values seen while decoding",
			},
			[]string{"kind"},
		),

		archiveOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_archive_operations_total",
				Help: "Total number of archive operations",
			},
			[]string{"operation", "status"},
		),

		archiveEntries: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "polyparser_archive_entries",
				Help: "Number of entries in the archive",
			},
		),

		authRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_auth_requests_total",
				Help: "Total number of authentication requests",
			},
			[]string{"status"},
		),

		healthChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "polyparser_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}

	return m
}

func status(success bool) string {
	if success {
		return statusSuccess
	}
	return statusError
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)

	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordConversion records one decode or encode.
func (m *Metrics) RecordConversion(kind, direction string, inputBytes int, success bool, duration time.Duration) {
	m.conversionsTotal.WithLabelValues(kind, direction, status(success)).Inc()
	m.conversionDuration.WithLabelValues(kind, direction).Observe(duration.Seconds())
	m.conversionBytes.WithLabelValues(kind, direction).Observe(float64(inputBytes))
}

// RecordDecodeFindings adds the warnings and anomalies of one session.
func (m *Metrics) RecordDecodeFindings(kind string, warnings, anomalies int) {
	m.warningsTotal.WithLabelValues(kind).Add(float64(warnings))
	m.anomaliesTotal.WithLabelValues(kind).Add(float64(anomalies))
}

func (m *Metrics) RecordArchiveOperation(operation string, success bool) {
	m.archiveOperationsTotal.WithLabelValues(operation, status(success)).Inc()
}

func (m *Metrics) SetArchiveEntries(n int) {
	m.archiveEntries.Set(float64(n))
}

// RecordAuthRequest records an authentication request
func (m *Metrics) RecordAuthRequest(success bool) {
	m.authRequestsTotal.WithLabelValues(status(success)).Inc()
}

// RecordHealthCheck records a health check
func (m *Metrics) RecordHealthCheck(success bool) {
	m.healthChecksTotal.WithLabelValues(status(success)).Inc()
}

// InstrumentHandler instruments an HTTP handler with metrics
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}

// InstrumentAuthMiddleware instruments the authentication middleware
func (m *Metrics) InstrumentAuthMiddleware(next func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasAPIKey := r.Header.Get("X-API-Key") != ""

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next(h).ServeHTTP(rw, r)

			if hasAPIKey {
				m.RecordAuthRequest(rw.statusCode != http.StatusUnauthorized)
			}
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
