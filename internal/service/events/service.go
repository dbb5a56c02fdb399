// Package events ingests analytics events sent by clients and lists them
// for administrators.
package events

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
)

type eventRepo interface {
	InsertBatch(ctx context.Context, events []domain.Event) error
	Find(ctx context.Context, where query.Predicate, order []query.Order, limit, offset int) ([]domain.Event, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInSnapshot(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	MaxBatch        = 500
	MaxEventNameLen = 64
	MaxSessionIDLen = 64
	MaxUserAgentLen = 256
	MaxIPLen        = 64
	MaxPropsLen     = 2000

	DefaultListLimit = 50
	MaxListLimit     = 200

	unknownEvent = "unknown"
)

// Service provides event ingestion and listing.
type Service struct {
	events eventRepo
	tx     txManager
	log    *slog.Logger
}

// NewService creates a new events service.
func NewService(log *slog.Logger, events eventRepo, tx txManager) *Service {
	return &Service{
		events: events,
		tx:     tx,
		log:    log.With("service", "events"),
	}
}
