// Package workout implements the workouts repository using PostgreSQL.
package workout

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides workout persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Workout]
}

// New creates a new workouts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Workout]{
		Name:       schema.Workouts.Name,
		Entity:     "workout",
		Columns:    schema.Workouts.Columns(),
		DateColumn: schema.Workouts.StartedAt,
		Scan:       scan,
		Values:     values,
		ID:         func(w domain.Workout) uuid.UUID { return w.ID },
	})}
}

func scan(row pgx.Row) (domain.Workout, error) {
	var w domain.Workout
	err := row.Scan(&w.ID, &w.UserID, &w.Type, &w.DurationMin, &w.Calories,
		&w.DistanceKm, &w.Intensity, &w.Note, &w.StartedAt, &w.CreatedAt)
	w.StartedAt = w.StartedAt.UTC()
	w.CreatedAt = w.CreatedAt.UTC()
	return w, err
}

func values(w domain.Workout) []any {
	return []any{w.ID, w.UserID, w.Type, w.DurationMin, w.Calories,
		w.DistanceKm, w.Intensity, w.Note, w.StartedAt, w.CreatedAt}
}
