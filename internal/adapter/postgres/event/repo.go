// Package event implements the analytics events repository using PostgreSQL.
package event

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides event persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Event]
	pool *pgxpool.Pool
}

// New creates a new events repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{
		Store: postgres.NewStore(pool, postgres.Table[domain.Event]{
			Name:       schema.Events.Name,
			Entity:     "event",
			Columns:    schema.Events.Columns(),
			DateColumn: schema.CreatedAt,
			Scan:       scan,
			Values:     values,
			ID:         func(e domain.Event) uuid.UUID { return e.ID },
		}),
		pool: pool,
	}
}

// InsertBatch queues one INSERT per event and sends them in a single round
// trip. Callers wrap it in a transaction to make the batch all-or-nothing.
func (r *Repo) InsertBatch(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range events {
		sql, args, err := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
			Insert(schema.Events.Name).
			Columns(schema.Events.Columns()...).
			Values(values(e)...).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert event: %w", err)
		}
		batch.Queue(sql, args...)
	}

	br := postgres.QuerierFromCtx(ctx, r.pool).SendBatch(ctx, batch)
	for i := range events {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return postgres.MapError(err, "event", events[i].ID)
		}
	}
	if err := br.Close(); err != nil {
		return postgres.MapError(err, "event", uuid.Nil)
	}
	return nil
}

func scan(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(&e.ID, &e.UserID, &e.SessionID, &e.Event, &e.Props,
		&e.UserAgent, &e.IP, &e.CreatedAt)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, err
}

func values(e domain.Event) []any {
	return []any{e.ID, e.UserID, e.SessionID, e.Event, e.Props,
		e.UserAgent, e.IP, e.CreatedAt}
}
