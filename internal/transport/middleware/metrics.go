package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/healthtrack-backend/internal/metrics"
)

// Metrics records request latency and in-flight requests, labelled by the
// matched ServeMux pattern, and hands the pattern to the access log. It must
// wrap the mux directly: the mux sets r.Pattern on the request it receives.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		noteRoute(r.Context(), route)
		metrics.RecordHTTPRequest(r.Method, route, sw.status, time.Since(start))
	})
}
