package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/service/auth"
)

type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.Result, error)
	Refresh(ctx context.Context, input auth.RefreshInput) (*auth.Result, error)
	Logout(ctx context.Context) error
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type registerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type authResponse struct {
	Token        string       `json:"token"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	RefreshToken string       `json:"refreshToken"`
	User         userResponse `json:"user"`
}

func toAuthResponse(res *auth.Result) authResponse {
	return authResponse{
		Token:        res.AccessToken,
		ExpiresAt:    res.ExpiresAt,
		RefreshToken: res.RefreshToken,
		User:         toUser(*res.User),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	user, err := h.svc.Register(r.Context(), auth.RegisterInput(req))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{ID: user.ID.String(), Email: user.Email})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Login(r.Context(), auth.LoginInput(req))
	if err != nil {
		h.authError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

// Refresh handles POST /api/auth/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	res, err := h.svc.Refresh(r.Context(), auth.RefreshInput(req))
	if err != nil {
		h.authError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Logout(r.Context()); err != nil {
		handleError(w, r, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// authError reports credential failures with a fixed message that does not
// reveal whether the email exists.
func (h *AuthHandler) authError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	handleError(w, r, h.log, err)
}
