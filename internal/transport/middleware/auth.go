package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/heartmarshall/healthtrack-backend/internal/auth"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

type authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Identity, error)
}

// Auth resolves a bearer token into the request context. Requests without
// a token pass through anonymously; an invalid token is rejected with 401.
func Auth(authn authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			noteUser(r.Context(), id.UserID, id.Role.String())
			ctx := ctxutil.WithUserID(r.Context(), id.UserID)
			ctx = ctxutil.WithUserRole(ctx, id.Role.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admin users
// with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !ctxutil.IsAdminCtx(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func extractBearerToken(r *http.Request) string {
	const prefix = "bearer "
	h := r.Header.Get("Authorization")
	if len(h) < len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
