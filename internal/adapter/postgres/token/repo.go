// Package token implements the RefreshToken repository using PostgreSQL.
package token

import (
	"context"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

const (
	table  = "refresh_tokens"
	entity = "refresh_token"
)

var (
	psql    = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	columns = []string{"id", "user_id", "token_hash", "expires_at", "created_at", "revoked_at"}
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new refresh token and returns the stored row.
func (r *Repo) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (*domain.RefreshToken, error) {
	sql, args, err := psql.Insert(table).
		Columns("id", "user_id", "token_hash", "expires_at").
		Values(uuid.New(), userID, tokenHash, expiresAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", table, err)
	}

	t, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return &t, nil
}

// GetByHash returns an active (non-revoked, non-expired) refresh token by its hash.
// Returns domain.ErrNotFound if the token does not exist, is revoked, or is expired.
func (r *Repo) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	sql, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"token_hash": tokenHash, "revoked_at": nil}).
		Where("expires_at > now()").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	t, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return &t, nil
}

// RevokeByID revokes a specific refresh token. Revoking twice is not an error.
func (r *Repo) RevokeByID(ctx context.Context, id uuid.UUID) error {
	return r.revoke(ctx, sq.Eq{"id": id, "revoked_at": nil}, id)
}

// RevokeAllByUser revokes all active refresh tokens of the given user.
func (r *Repo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.revoke(ctx, sq.Eq{"user_id": userID, "revoked_at": nil}, userID)
}

func (r *Repo) revoke(ctx context.Context, where sq.Eq, id uuid.UUID) error {
	sql, args, err := psql.Update(table).
		Set("revoked_at", sq.Expr("now()")).
		Where(where).
		ToSql()
	if err != nil {
		return fmt.Errorf("build revoke %s: %w", table, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, entity, id)
	}
	return nil
}

// DeleteExpired removes all expired or revoked tokens and returns how many
// rows were deleted. It does not run in a transaction.
func (r *Repo) DeleteExpired(ctx context.Context) (int, error) {
	sql, args, err := psql.Delete(table).
		Where(sq.Or{sq.Expr("expires_at <= now()"), sq.NotEq{"revoked_at": nil}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete %s: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, entity, uuid.Nil)
	}
	return int(tag.RowsAffected()), nil
}

func scan(row pgx.Row) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := row.Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	t.ExpiresAt, t.CreatedAt = t.ExpiresAt.UTC(), t.CreatedAt.UTC()
	return t, err
}
