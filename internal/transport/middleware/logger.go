package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

// accessInfo collects what inner middleware learns about a request after
// routing and authentication. Logger reads it once the request completes.
type accessInfo struct {
	route  string
	userID uuid.UUID
	role   string
}

type accessInfoKey struct{}

func noteRoute(ctx context.Context, route string) {
	if ai, ok := ctx.Value(accessInfoKey{}).(*accessInfo); ok {
		ai.route = route
	}
}

func noteUser(ctx context.Context, userID uuid.UUID, role string) {
	if ai, ok := ctx.Value(accessInfoKey{}).(*accessInfo); ok {
		ai.userID = userID
		ai.role = role
	}
}

// healthPaths are polled by orchestrators and logged at debug level only.
var healthPaths = map[string]bool{
	"/live":   true,
	"/ready":  true,
	"/health": true,
}

// Logger returns middleware that writes one "http.request" record per
// request: method, matched route, path, status, response size, duration,
// request id and, for authenticated requests, the user and role.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			info := &accessInfo{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), accessInfoKey{}, info)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int64("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if info.route != "" {
				attrs = append(attrs, slog.String("route", info.route))
			}
			if info.userID != uuid.Nil {
				attrs = append(attrs,
					slog.String("user_id", info.userID.String()),
					slog.String("user_role", info.role),
				)
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case healthPaths[r.URL.Path]:
				level = slog.LevelDebug
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter captures the response status and body size.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}
