package rest

import (
	"context"
	"net/http"
	"time"
)

// pinger defines the minimal interface for dependency health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	db      pinger
	cache   pinger
	service string
	version string
}

// NewHealthHandler creates a HealthHandler. cache may be nil when the
// insights cache is disabled.
func NewHealthHandler(db, cache pinger, service, version string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, service: service, version: version}
}

// APIHealthResponse is the JSON response for /api/health.
type APIHealthResponse struct {
	OK      bool      `json:"ok"`
	Ready   bool      `json:"ready"`
	Service string    `json:"service"`
	Version string    `json:"version"`
	TS      time.Time `json:"ts"`
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness check. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness check. Pings DB: 200 if OK, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. Pings DB with latency measurement and includes version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus)
	overallStatus := "ok"

	components["database"] = check(ctx, h.db)
	if components["database"].Status != "ok" {
		overallStatus = "down"
	}
	if h.cache != nil {
		// The cache is optional: a failing cache degrades, never fails, the service.
		components["cache"] = check(ctx, h.cache)
		if components["cache"].Status != "ok" && overallStatus == "ok" {
			overallStatus = "degraded"
		}
	}

	status := http.StatusOK
	if overallStatus == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// APIHealth handles GET /api/health. It always answers 200; Ready reports
// whether the database is reachable.
func (h *HealthHandler) APIHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, APIHealthResponse{
		OK:      true,
		Ready:   h.db.Ping(ctx) == nil,
		Service: h.service,
		Version: h.version,
		TS:      time.Now().UTC(),
	})
}

func check(ctx context.Context, p pinger) CompStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}
