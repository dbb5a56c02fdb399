package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/healthtrack-backend/internal/config"
)

// exposedHeaders are response headers browsers may read cross-origin: the
// request id for support tickets and the rate limiter's retry hint.
const exposedHeaders = RequestIDHeader + ",Retry-After"

// CORS returns middleware that handles Cross-Origin Resource Sharing.
// Allowed origins get their origin echoed back; preflight requests
// (OPTIONS carrying Access-Control-Request-Method) are answered with 204
// and never reach the router. Plain OPTIONS requests pass through.
func CORS(cfg config.CORSConfig) Middleware {
	origins := splitList(cfg.AllowedOrigins)
	methods := strings.Join(splitList(cfg.AllowedMethods), ",")
	headers := strings.Join(splitList(cfg.AllowedHeaders), ",")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Origin")

			origin := r.Header.Get("Origin")
			allowed := origin != "" && isAllowedOrigin(origin, origins)
			if allowed {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Expose-Headers", exposedHeaders)
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				if allowed {
					w.Header().Set("Access-Control-Allow-Methods", methods)
					w.Header().Set("Access-Control-Allow-Headers", headers)
					w.Header().Set("Access-Control-Max-Age", maxAge)
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isAllowedOrigin(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
