// Package meal implements the meals repository using PostgreSQL.
package meal

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Repo provides meal persistence backed by PostgreSQL.
type Repo struct {
	*postgres.Store[domain.Meal]
}

// New creates a new meals repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{Store: postgres.NewStore(pool, postgres.Table[domain.Meal]{
		Name:       schema.Meals.Name,
		Entity:     "meal",
		Columns:    schema.Meals.Columns(),
		DateColumn: schema.Meals.WhenAt,
		Scan:       scan,
		Values:     values,
		ID:         func(m domain.Meal) uuid.UUID { return m.ID },
	})}
}

func scan(row pgx.Row) (domain.Meal, error) {
	var m domain.Meal
	err := row.Scan(&m.ID, &m.UserID, &m.WhenAt, &m.MealType, &m.Calories,
		&m.Protein, &m.Carbs, &m.Fat, &m.Note, &m.CreatedAt)
	m.WhenAt, m.CreatedAt = m.WhenAt.UTC(), m.CreatedAt.UTC()
	return m, err
}

func values(m domain.Meal) []any {
	return []any{m.ID, m.UserID, m.WhenAt, m.MealType, m.Calories,
		m.Protein, m.Carbs, m.Fat, m.Note, m.CreatedAt}
}
