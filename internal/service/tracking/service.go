// Package tracking implements creation, listing and deletion of a user's
// health records.
package tracking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/metrics"
	"github.com/heartmarshall/healthtrack-backend/internal/service/listing"
	"github.com/heartmarshall/healthtrack-backend/pkg/ctxutil"
)

type recordRepo[T any] interface {
	listing.Source[T]
	Insert(ctx context.Context, item T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type goalRepo interface {
	recordRepo[domain.Goal]
	Complete(ctx context.Context, userID, id uuid.UUID) (domain.Goal, error)
}

type reminderRepo interface {
	recordRepo[domain.Reminder]
	MarkSent(ctx context.Context, userID, id uuid.UUID) (domain.Reminder, error)
}

// snapshotter runs a group of reads against one consistent snapshot.
type snapshotter interface {
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

// invalidator drops cached derived data of a user after a write.
type invalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// Repos groups the record repositories used by the service.
type Repos struct {
	Vitals       recordRepo[domain.Vital]
	Workouts     recordRepo[domain.Workout]
	Sleep        recordRepo[domain.Sleep]
	Meals        recordRepo[domain.Meal]
	Measurements recordRepo[domain.Measurement]
	Goals        goalRepo
	Reminders    reminderRepo
}

// Service provides record tracking operations.
type Service struct {
	repos Repos
	reads snapshotter
	cache invalidator
	log   *slog.Logger
}

// NewService creates a new tracking service. cache may be nil.
func NewService(log *slog.Logger, repos Repos, reads snapshotter, cache invalidator) *Service {
	return &Service{
		repos: repos,
		reads: reads,
		cache: cache,
		log:   log.With("service", "tracking"),
	}
}

func (s *Service) userID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return id, nil
}

func (s *Service) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}

func create[T any](ctx context.Context, s *Service, kind domain.RecordKind, repo recordRepo[T], userID uuid.UUID, item T) (T, error) {
	if err := repo.Insert(ctx, item); err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", kind, err)
	}
	s.invalidate(ctx, userID)
	metrics.RecordWrite(kind.String(), "create")
	s.log.DebugContext(ctx, "record created", slog.String("kind", kind.String()), slog.String("user_id", userID.String()))
	return item, nil
}

func list[T any](ctx context.Context, s *Service, kind domain.RecordKind, repo recordRepo[T], params domain.ListParams) (domain.Page[T], error) {
	userID, err := s.userID(ctx)
	if err != nil {
		return domain.Page[T]{}, err
	}
	// The page and its total come from one snapshot so they agree.
	var page domain.Page[T]
	err = s.reads.RunInSnapshot(ctx, func(ctx context.Context) error {
		var err error
		page, err = listing.List[T](ctx, repo, Specs[kind], userID, params)
		return err
	})
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list %s: %w", kind, err)
	}
	return page, nil
}
