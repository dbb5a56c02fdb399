package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

// GetProfile returns the authenticated user.
func (s *Service) GetProfile(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user.GetProfile: %w", err)
	}
	return user, nil
}

// DeleteAccount removes the authenticated user. Records, events and refresh
// tokens owned by the user are removed by the database cascade.
func (s *Service) DeleteAccount(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("user.DeleteAccount: %w", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}

	s.log.InfoContext(ctx, "account deleted", slog.String("user_id", userID.String()))
	return nil
}
