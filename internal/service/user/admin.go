package user

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// SetUserRole changes the role of a user (admin only). Existing refresh
// tokens of the target are revoked so the new role is picked up on next login.
func (s *Service) SetUserRole(ctx context.Context, targetUserID uuid.UUID, role domain.UserRole) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("role", "must be 'user' or 'admin'")
	}

	callerID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if callerID == targetUserID && role == domain.UserRoleUser {
		return nil, domain.NewValidationError("role", "cannot demote yourself")
	}

	return s.updateRole(ctx, targetUserID, role)
}

// Promote grants the admin role to the user with the given email. It is
// meant for operator tooling and performs no caller check.
func (s *Service) Promote(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user.Promote: %w", err)
	}
	if user.Role.IsAdmin() {
		return user, nil
	}
	return s.updateRole(ctx, user.ID, domain.UserRoleAdmin)
}

func (s *Service) updateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, fmt.Errorf("user.updateRole: %w", err)
	}
	if err := s.tokens.RevokeAllByUser(ctx, id); err != nil {
		return nil, fmt.Errorf("user.updateRole revoke tokens: %w", err)
	}

	s.log.InfoContext(ctx, "user role updated",
		slog.String("target_user_id", id.String()),
		slog.String("new_role", role.String()),
	)
	return user, nil
}

// ListUsers returns a page of users, newest first (admin only).
func (s *Service) ListUsers(ctx context.Context, page, limit int) (domain.Page[domain.User], error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.Page[domain.User]{}, domain.ErrForbidden
	}

	if page < 1 {
		page = 1
	}
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	page = min(page, math.MaxInt/limit+1)

	users, err := s.users.List(ctx, limit, (page-1)*limit)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("user.ListUsers: %w", err)
	}
	total, err := s.users.Count(ctx)
	if err != nil {
		return domain.Page[domain.User]{}, fmt.Errorf("user.ListUsers count: %w", err)
	}

	return domain.Page[domain.User]{Page: page, Limit: limit, Total: total, Items: users}, nil
}
