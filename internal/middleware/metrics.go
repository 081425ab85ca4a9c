package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prajwalbharadwajbm/adweave/internal/metrics"
)

// MetricsMiddleware wraps HTTP handlers to collect Prometheus metrics
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{
		metrics: metrics,
	}
}

// Middleware returns the HTTP middleware function
func (m *MetricsMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Normalize endpoint path for metrics (collapse campaign ids)
		endpoint := normalizeEndpoint(r.URL.Path)
		method := r.Method

		m.metrics.IncRequestsInFlight(method, endpoint)
		defer m.metrics.DecRequestsInFlight(method, endpoint)

		// Wrap the response writer to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		m.metrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(200)
	}
	return rw.ResponseWriter.Write(b)
}

// normalizeEndpoint collapses per-campaign paths so metric labels stay
// low cardinality
func normalizeEndpoint(path string) string {
	path = strings.TrimSuffix(path, "/")

	switch path {
	case "/health", "/metrics", "/v1/campaigns", "/v1/stats/revenue", "/v1/feed", "/v1/preroll":
		return path
	}

	if strings.HasPrefix(path, "/v1/campaigns/") {
		rest := strings.TrimPrefix(path, "/v1/campaigns/")
		parts := strings.SplitN(rest, "/", 2)
		if len(parts) == 1 {
			return "/v1/campaigns/:id"
		}
		return "/v1/campaigns/:id/" + parts[1]
	}

	return path
}
