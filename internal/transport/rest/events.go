package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/service/events"
	"github.com/heartmarshall/healthtrack-backend/internal/transport/middleware"
)

type eventService interface {
	Ingest(ctx context.Context, in events.IngestInput) (int, error)
	List(ctx context.Context, page, limit int) (domain.Page[domain.Event], error)
}

// EventHandler serves analytics event ingestion and the admin listing.
type EventHandler struct {
	svc eventService
	log *slog.Logger
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(svc eventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{svc: svc, log: logger.With("handler", "events")}
}

type eventRequest struct {
	Event     string          `json:"event"`
	SessionID string          `json:"sessionId"`
	UserAgent string          `json:"userAgent"`
	Props     json.RawMessage `json:"props"`
	Timestamp string          `json:"timestamp"`
}

type trackRequest struct {
	Events []eventRequest `json:"events"`
}

type trackResponse struct {
	Accepted int `json:"accepted"`
}

// Track handles POST /api/track. Anonymous clients are accepted.
func (h *EventHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	in := events.IngestInput{
		Events:    make([]events.EventInput, 0, len(req.Events)),
		IP:        middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
	for _, e := range req.Events {
		in.Events = append(in.Events, events.EventInput(e))
	}

	n, err := h.svc.Ingest(r.Context(), in)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusAccepted, trackResponse{Accepted: n})
}

// List handles GET /api/events?page&limit (admin only).
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.List(r.Context(), intParam(q.Get("page")), intParam(q.Get("limit")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toEvent))
}
