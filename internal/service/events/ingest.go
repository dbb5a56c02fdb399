package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/metrics"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

// EventInput is one client-reported event. Every field is optional.
type EventInput struct {
	Event     string
	SessionID string
	UserAgent string
	Props     json.RawMessage
	Timestamp string
}

// IngestInput is a batch of events from one client request.
type IngestInput struct {
	Events []EventInput
	// IP is the client address; UserAgent is used for events that carry none.
	IP        string
	UserAgent string
}

// Ingest stores the whole batch or nothing and returns the number of
// accepted events. Events are attributed to the authenticated user, if any.
func (s *Service) Ingest(ctx context.Context, in IngestInput) (int, error) {
	if len(in.Events) == 0 {
		return 0, domain.NewValidationError("events", "no events")
	}
	if len(in.Events) > MaxBatch {
		return 0, fmt.Errorf("%w: at most %d events per batch", domain.ErrTooLarge, MaxBatch)
	}

	var userID *uuid.UUID
	if id, ok := ctxutil.UserIDFromCtx(ctx); ok {
		userID = &id
	}

	now := time.Now().UTC()
	ip := clean(in.IP, MaxIPLen)
	rows := make([]domain.Event, 0, len(in.Events))
	for _, e := range in.Events {
		ua := clean(e.UserAgent, MaxUserAgentLen)
		if ua == nil {
			ua = clean(in.UserAgent, MaxUserAgentLen)
		}

		name := unknownEvent
		if n := clean(e.Event, MaxEventNameLen); n != nil {
			name = *n
		}

		rows = append(rows, domain.Event{
			ID:        uuid.New(),
			UserID:    userID,
			SessionID: clean(e.SessionID, MaxSessionIDLen),
			Event:     name,
			Props:     props(e.Props),
			UserAgent: ua,
			IP:        ip,
			CreatedAt: timestamp(e.Timestamp, now),
		})
	}

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		return s.events.InsertBatch(ctx, rows)
	})
	if err != nil {
		return 0, fmt.Errorf("ingest events: %w", err)
	}

	metrics.EventsIngested.Add(float64(len(rows)))
	s.log.DebugContext(ctx, "events ingested", slog.Int("count", len(rows)))
	return len(rows), nil
}

// clean truncates s to n characters. An empty string is absent.
func clean(s string, n int) *string {
	if s == "" {
		return nil
	}
	s = truncate(s, n)
	return &s
}

// props compacts the raw JSON and truncates it. Empty, null, false, zero
// and empty-string values are absent.
func props(raw json.RawMessage) *string {
	text := strings.TrimSpace(string(raw))
	switch text {
	case "", "null", "false", "0", `""`:
		return nil
	}

	var b bytes.Buffer
	if err := json.Compact(&b, raw); err == nil {
		text = b.String()
	}
	text = truncate(text, MaxPropsLen)
	return &text
}

// timestamp parses a client timestamp, falling back to now.
func timestamp(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return now
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
