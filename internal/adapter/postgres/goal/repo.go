// Package goal implements the goals repository using PostgreSQL.
package goal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides goal persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Goal]
}

// New creates a new goals repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Goal]{
		Name:       schema.Goals.Name,
		Entity:     "goal",
		Columns:    schema.Goals.Columns(),
		DateColumn: schema.CreatedAt,
		Scan:       scan,
		Values:     values,
		ID:         func(g domain.Goal) uuid.UUID { return g.ID },
	})}
}

// Complete marks the goal as completed. Completing twice is not an error.
func (r *Repo) Complete(ctx context.Context, userID, id uuid.UUID) (domain.Goal, error) {
	return r.SetFlag(ctx, userID, id, schema.Goals.Completed)
}

func scan(row pgx.Row) (domain.Goal, error) {
	var g domain.Goal
	var due *time.Time
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.Metric, &g.Target,
		&due, &g.Completed, &g.CreatedAt)
	if due != nil {
		u := due.UTC()
		g.DueDate = &u
	}
	g.CreatedAt = g.CreatedAt.UTC()
	return g, err
}

func values(g domain.Goal) []any {
	return []any{g.ID, g.UserID, g.Title, g.Metric, g.Target,
		g.DueDate, g.Completed, g.CreatedAt}
}
