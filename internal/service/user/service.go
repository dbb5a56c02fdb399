// Package user implements profile, account deletion and role management.
package user

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type tokenRevoker interface {
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

type invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// Service implements user operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRevoker
	cache  invalidator
}

// NewService creates a new user service. cache may be nil.
func NewService(logger *slog.Logger, users userRepo, tokens tokenRevoker, cache invalidator) *Service {
	return &Service{
		log:    logger.With("service", "user"),
		users:  users,
		tokens: tokens,
		cache:  cache,
	}
}
