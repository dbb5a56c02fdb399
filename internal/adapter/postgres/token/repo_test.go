package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres/token"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

func newRepo(t *testing.T) (*token.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return token.New(pool), pool
}

func newHash() string {
	return "hash-" + uuid.NewString()
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	user := testhelper.SeedUser(t, pool)
	hash := newHash()
	expiresAt := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Microsecond)

	got, err := repo.Create(ctx, user.ID, hash, expiresAt)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, hash, got.TokenHash)
	assert.True(t, got.ExpiresAt.Equal(expiresAt))
	assert.False(t, got.CreatedAt.IsZero())
	assert.Nil(t, got.RevokedAt)
}

func TestRepo_Create_UnknownUser(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.Create(context.Background(), uuid.New(), newHash(), time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepo_GetByHash(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	active, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	expired, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	revoked, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.RevokeByID(ctx, revoked.ID))

	got, err := repo.GetByHash(ctx, active.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)

	tests := []struct {
		name string
		hash string
	}{
		{"expired", expired.TokenHash},
		{"revoked", revoked.TokenHash},
		{"missing", newHash()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.GetByHash(ctx, tt.hash)
			assert.ErrorIs(t, err, domain.ErrNotFound)
		})
	}
}

func TestRepo_RevokeByID_Idempotent(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	tok, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.RevokeByID(ctx, tok.ID))
	require.NoError(t, repo.RevokeByID(ctx, tok.ID))
	require.NoError(t, repo.RevokeByID(ctx, uuid.New()))
}

func TestRepo_RevokeAllByUser(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	alice := testhelper.SeedUser(t, pool)
	bob := testhelper.SeedUser(t, pool)

	a1, err := repo.Create(ctx, alice.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	a2, err := repo.Create(ctx, alice.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	b1, err := repo.Create(ctx, bob.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.RevokeAllByUser(ctx, alice.ID))

	for _, h := range []string{a1.TokenHash, a2.TokenHash} {
		_, err := repo.GetByHash(ctx, h)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	_, err = repo.GetByHash(ctx, b1.TokenHash)
	assert.NoError(t, err)
}

func TestRepo_DeleteExpired(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	user := testhelper.SeedUser(t, pool)

	active, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(ctx, user.ID, newHash(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	revoked, err := repo.Create(ctx, user.ID, newHash(), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.RevokeByID(ctx, revoked.ID))

	n, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	// Other parallel tests share the database, so only a lower bound holds.
	assert.GreaterOrEqual(t, n, 2)

	var remaining int
	require.NoError(t, pool.QueryRow(ctx,
		`SELECT count(*) FROM refresh_tokens WHERE user_id = $1`, user.ID).Scan(&remaining))
	assert.Equal(t, 1, remaining)

	_, err = repo.GetByHash(ctx, active.TokenHash)
	assert.NoError(t, err)
}
