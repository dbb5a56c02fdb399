// Package insights aggregates a user's health records into an overview and
// day-bucketed trend series.
package insights

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/config"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

type recordReader[T any] interface {
	Find(ctx context.Context, where query.Predicate, order []query.Order, limit, offset int) ([]T, error)
	FindRecentDays(ctx context.Context, where query.Predicate, days int) ([]T, error)
}

// resultCache stores computed results per user. Implementations never fail
// the caller; a miss is reported as false.
type resultCache interface {
	// Get reports a hit and the cache version it looked under; Set stores
	// under that version so a result computed before an invalidation is dropped.
	Get(ctx context.Context, userID uuid.UUID, key string, dst any) (int64, bool)
	Set(ctx context.Context, userID uuid.UUID, ver int64, key string, value any)
}

// Readers groups the record readers the engine aggregates over.
type Readers struct {
	Vitals   recordReader[domain.Vital]
	Workouts recordReader[domain.Workout]
	Sleep    recordReader[domain.Sleep]
	Meals    recordReader[domain.Meal]
}

// Service computes insights.
type Service struct {
	readers Readers
	cfg     config.InsightsConfig
	cache   resultCache
	log     *slog.Logger
}

// NewService creates a new insights service. cache may be nil.
func NewService(log *slog.Logger, readers Readers, cfg config.InsightsConfig, cache resultCache) *Service {
	return &Service{
		readers: readers,
		cfg:     cfg,
		cache:   cache,
		log:     log.With("service", "insights"),
	}
}

func (s *Service) userID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

// cached returns the cached value for key or computes and stores it.
func cached[T any](ctx context.Context, s *Service, userID uuid.UUID, key string, compute func() (T, error)) (T, error) {
	if s.cache == nil {
		return compute()
	}

	var out T
	ver, ok := s.cache.Get(ctx, userID, key, &out)
	if ok {
		return out, nil
	}
	out, err := compute()
	if err != nil {
		return out, err
	}
	s.cache.Set(ctx, userID, ver, key, out)
	return out, nil
}
