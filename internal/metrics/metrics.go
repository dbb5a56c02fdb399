// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry and exposed on the metrics endpoint.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests being served",
		},
	)

	// InsightsCacheRequests counts cache lookups by result: hit, miss, error.
	InsightsCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insights_cache_requests_total",
			Help: "Insights cache lookups by result",
		},
		[]string{"result"},
	)

	EventsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_ingested_total",
			Help: "Analytics events accepted by the ingestion endpoint",
		},
	)

	RecordsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_written_total",
			Help: "Health record writes by kind and operation",
		},
		[]string{"kind", "op"},
	)
)

// RecordHTTPRequest observes one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}

// RecordCacheLookup counts one insights cache lookup.
func RecordCacheLookup(result string) {
	InsightsCacheRequests.WithLabelValues(result).Inc()
}

// RecordWrite counts one record write.
func RecordWrite(kind, op string) {
	RecordsWritten.WithLabelValues(kind, op).Inc()
}
