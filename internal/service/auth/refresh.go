package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/healthtrack-backend/internal/auth"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

// Refresh rotates a refresh token: the presented token is revoked and a new
// token pair is issued in one transaction. An unknown, revoked or expired
// token yields domain.ErrUnauthorized.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result *Result
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		token, err := s.tokens.GetByHash(ctx, auth.HashToken(input.RefreshToken))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "unknown or reused refresh token")
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("get token: %w", err)
		}
		if token.IsRevoked() || token.IsExpired(time.Now()) {
			return domain.ErrUnauthorized
		}

		user, err := s.users.GetByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.log.WarnContext(ctx, "refresh for deleted user",
					slog.String("user_id", token.UserID.String()))
				return domain.ErrUnauthorized
			}
			return fmt.Errorf("get user: %w", err)
		}

		if err := s.tokens.RevokeByID(ctx, token.ID); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}

		result, err = s.issueTokens(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}
	return result, nil
}
