// Package reminder implements the reminders repository using PostgreSQL.
package reminder

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides reminder persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Reminder]
}

// New creates a new reminders repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Reminder]{
		Name:       schema.Reminders.Name,
		Entity:     "reminder",
		Columns:    schema.Reminders.Columns(),
		DateColumn: schema.Reminders.At,
		Scan:       scan,
		Values:     values,
		ID:         func(r domain.Reminder) uuid.UUID { return r.ID },
	})}
}

// MarkSent flags the reminder as sent. Marking twice is not an error.
func (r *Repo) MarkSent(ctx context.Context, userID, id uuid.UUID) (domain.Reminder, error) {
	return r.SetFlag(ctx, userID, id, schema.Reminders.Sent)
}

func scan(row pgx.Row) (domain.Reminder, error) {
	var r domain.Reminder
	err := row.Scan(&r.ID, &r.UserID, &r.Title, &r.At, &r.RepeatRule,
		&r.Note, &r.Sent, &r.CreatedAt)
	r.At, r.CreatedAt = r.At.UTC(), r.CreatedAt.UTC()
	return r, err
}

func values(r domain.Reminder) []any {
	return []any{r.ID, r.UserID, r.Title, r.At, r.RepeatRule,
		r.Note, r.Sent, r.CreatedAt}
}
