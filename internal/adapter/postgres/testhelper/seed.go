package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with the "user" role and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleUser)
}

// SeedAdmin creates a user with the "admin" role and returns it.
func SeedAdmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUser(t, pool, domain.UserRoleAdmin)
}

func seedUser(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()

	user := domain.User{
		ID:           uuid.New(),
		Email:        "testuser-" + uniqueSuffix() + "@example.com",
		PasswordHash: "$2a$10$seededhashnotusable",
		Role:         role,
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO users (id, email, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Email, user.PasswordHash, string(user.Role), user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
