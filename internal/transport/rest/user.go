package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

type userService interface {
	GetProfile(ctx context.Context) (*domain.User, error)
	DeleteAccount(ctx context.Context) error
	ListUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error)
	SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error)
}

// UserHandler serves the profile and user administration endpoints.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "user")}
}

// Me handles GET /api/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.GetProfile(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(*user))
}

// DeleteMe handles DELETE /api/me.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteAccount(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListUsers handles GET /api/admin/users?page&limit.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.ListUsers(r.Context(), intParam(q.Get("page")), intParam(q.Get("limit")))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toPage(page, toUser))
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole handles PUT /api/admin/users/{id}/role.
func (h *UserHandler) SetRole(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	var req roleRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	user, err := h.svc.SetUserRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toUser(*user))
}
