package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = ctxutil.RequestIDFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vitals", nil)
	if incoming != "" {
		req.Header.Set(RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	RequestID(handler).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	return ctxID, rec.Header().Get(RequestIDHeader)
}

func TestRequestID_ReuseIncoming(t *testing.T) {
	incoming := "client-" + uuid.NewString()[:8]

	ctxID, headerID := serveRequestID(t, incoming)
	if ctxID != incoming {
		t.Errorf("expected request id %q in context, got %q", incoming, ctxID)
	}
	if headerID != incoming {
		t.Errorf("expected %s header %q, got %q", RequestIDHeader, incoming, headerID)
	}
}

func TestRequestID_GenerateNew(t *testing.T) {
	ctxID, headerID := serveRequestID(t, "")
	if _, err := uuid.Parse(ctxID); err != nil {
		t.Errorf("expected a UUID in context, got %q: %v", ctxID, err)
	}
	if headerID != ctxID {
		t.Errorf("expected header %q to match context %q", headerID, ctxID)
	}
}

func TestRequestID_RejectsUnusableIncoming(t *testing.T) {
	tests := map[string]string{
		"too long":      strings.Repeat("a", maxRequestIDLen+1),
		"control chars": "abc\x1b[31m",
		"spaces":        "a b",
	}
	for name, incoming := range tests {
		t.Run(name, func(t *testing.T) {
			ctxID, headerID := serveRequestID(t, incoming)
			if ctxID == incoming {
				t.Fatalf("expected %q to be replaced", incoming)
			}
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Errorf("expected a generated UUID, got %q", ctxID)
			}
			if headerID != ctxID {
				t.Errorf("expected header %q to match context %q", headerID, ctxID)
			}
		})
	}
}
