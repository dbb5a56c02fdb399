package events

import (
	"context"
	"fmt"
	"math"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

// List returns a page of events of all users, newest first. Admin only.
func (s *Service) List(ctx context.Context, page, limit int) (domain.Page[domain.Event], error) {
	if _, ok := ctxutil.UserIDFromCtx(ctx); !ok {
		return domain.Page[domain.Event]{}, domain.ErrUnauthorized
	}
	if !ctxutil.IsAdminCtx(ctx) {
		return domain.Page[domain.Event]{}, domain.ErrForbidden
	}

	page = max(page, 1)
	switch {
	case limit == 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	case limit < 1:
		limit = 1
	}
	page = min(page, math.MaxInt/limit+1)

	var (
		items []domain.Event
		total int
	)
	order := []query.Order{query.Desc(schema.CreatedAt), query.Desc(schema.ID)}
	err := s.tx.RunInSnapshot(ctx, func(ctx context.Context) error {
		var err error
		items, err = s.events.Find(ctx, nil, order, limit, (page-1)*limit)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		total, err = s.events.Count(ctx, nil)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Page[domain.Event]{}, err
	}

	return domain.Page[domain.Event]{Page: page, Limit: limit, Total: total, Items: items}, nil
}
