// Package measurement implements the body measurements repository using PostgreSQL.
package measurement

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides measurement persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Measurement]
}

// New creates a new measurements repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Measurement]{
		Name:       schema.Measurements.Name,
		Entity:     "measurement",
		Columns:    schema.Measurements.Columns(),
		DateColumn: schema.CreatedAt,
		Scan:       scan,
		Values:     values,
		ID:         func(m domain.Measurement) uuid.UUID { return m.ID },
	})}
}

func scan(row pgx.Row) (domain.Measurement, error) {
	var m domain.Measurement
	err := row.Scan(&m.ID, &m.UserID, &m.WeightKg, &m.BodyFatPct, &m.WaistCm,
		&m.HipCm, &m.Note, &m.CreatedAt)
	m.CreatedAt = m.CreatedAt.UTC()
	return m, err
}

func values(m domain.Measurement) []any {
	return []any{m.ID, m.UserID, m.WeightKg, m.BodyFatPct, m.WaistCm,
		m.HipCm, m.Note, m.CreatedAt}
}
