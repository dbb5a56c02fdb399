package rest

import (
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

const maxQueryLen = 128

// listParams sanitises list query parameters. Malformed values are treated
// as absent; the list engine applies defaults and bounds.
func listParams(r *http.Request) domain.ListParams {
	q := r.URL.Query()
	p := domain.ListParams{
		Page:  intParam(q.Get("page")),
		Limit: limitParam(q.Get("limit")),
		Sort:  strings.TrimSpace(q.Get("sort")),
		From:  parseBound(q.Get("from"), false),
		To:    parseBound(q.Get("to"), true),
		Q:     strings.TrimSpace(q.Get("q")),
	}
	if utf8.RuneCountInString(p.Q) > maxQueryLen {
		p.Q = string([]rune(p.Q)[:maxQueryLen])
	}
	return p
}

func window(r *http.Request) domain.Window {
	q := r.URL.Query()
	return domain.Window{
		From: parseBound(q.Get("from"), false),
		To:   parseBound(q.Get("to"), true),
	}
}

func intParam(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// limitParam reads a page size. An explicit zero or negative value asks for
// the smallest page; an absent or malformed one leaves the default.
func limitParam(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	switch {
	case err != nil:
		return 0
	case n < 1:
		return 1
	}
	return n
}

// parseBound accepts RFC 3339 timestamps and YYYY-MM-DD dates. A date-only
// upper bound covers the whole UTC day.
func parseBound(s string, upper bool) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.UTC()
		return &t
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
