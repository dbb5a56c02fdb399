// Package auth implements registration, password login, refresh-token
// rotation and access-token verification.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error)
	GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeByID(ctx context.Context, id uuid.UUID) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type tokenManager interface {
	IssueAccess(id auth.Identity) (auth.AccessToken, error)
	Verify(token string) (auth.Identity, error)
}

// Service implements auth operations.
type Service struct {
	log    *slog.Logger
	users  userRepo
	tokens tokenRepo
	tx     txManager
	jwt    tokenManager
	cfg    config.AuthConfig
}

// NewService creates a new auth service.
func NewService(
	logger *slog.Logger,
	users userRepo,
	tokens tokenRepo,
	tx txManager,
	jwt tokenManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:    logger.With("service", "auth"),
		users:  users,
		tokens: tokens,
		tx:     tx,
		jwt:    jwt,
		cfg:    cfg,
	}
}

// Result is returned by login and refresh.
type Result struct {
	AccessToken  string
	ExpiresAt    time.Time
	RefreshToken string
	User         *domain.User
}

// Authenticate verifies an access token and returns its identity.
func (s *Service) Authenticate(_ context.Context, token string) (auth.Identity, error) {
	return s.jwt.Verify(token)
}

// issueTokens creates an access token and stores a new refresh token for user.
func (s *Service) issueTokens(ctx context.Context, user *domain.User) (*Result, error) {
	access, err := s.jwt.IssueAccess(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if _, err := s.tokens.Create(ctx, user.ID, hash, time.Now().Add(s.cfg.RefreshTokenTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Result{
		AccessToken:  access.Token,
		ExpiresAt:    access.ExpiresAt,
		RefreshToken: raw,
		User:         user,
	}, nil
}
