// Package sleep implements the sleep repository using PostgreSQL.
package sleep

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides sleep persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Sleep]
}

// New creates a new sleep repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Sleep]{
		Name:       schema.Sleep.Name,
		Entity:     "sleep",
		Columns:    schema.Sleep.Columns(),
		DateColumn: schema.Sleep.StartAt,
		Scan:       scan,
		Values:     values,
		ID:         func(s domain.Sleep) uuid.UUID { return s.ID },
	})}
}

func scan(row pgx.Row) (domain.Sleep, error) {
	var s domain.Sleep
	err := row.Scan(&s.ID, &s.UserID, &s.Start, &s.End, &s.Quality,
		&s.Awakenings, &s.Note, &s.CreatedAt)
	s.Start, s.End, s.CreatedAt = s.Start.UTC(), s.End.UTC(), s.CreatedAt.UTC()
	return s, err
}

func values(s domain.Sleep) []any {
	return []any{s.ID, s.UserID, s.Start, s.End, s.Quality,
		s.Awakenings, s.Note, s.CreatedAt}
}
