// Package vital implements the vitals repository using PostgreSQL.
package vital

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides vitals persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Vital]
}

// New creates a new vitals repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Vital]{
		Name:       schema.Vitals.Name,
		Entity:     "vital",
		Columns:    schema.Vitals.Columns(),
		DateColumn: schema.CreatedAt,
		Scan:       scan,
		Values:     values,
		ID:         func(v domain.Vital) uuid.UUID { return v.ID },
	})}
}

func scan(row pgx.Row) (domain.Vital, error) {
	var v domain.Vital
	err := row.Scan(&v.ID, &v.UserID, &v.HeartRate, &v.Systolic, &v.Diastolic,
		&v.SpO2, &v.Temperature, &v.Mood, &v.Note, &v.CreatedAt)
	v.CreatedAt = v.CreatedAt.UTC()
	return v, err
}

func values(v domain.Vital) []any {
	return []any{v.ID, v.UserID, v.HeartRate, v.Systolic, v.Diastolic,
		v.SpO2, v.Temperature, v.Mood, v.Note, v.CreatedAt}
}
