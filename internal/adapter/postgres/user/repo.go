// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/healthtrack-backend/internal/adapter/postgres"
	"github.com/heartmarshall/healthtrack-backend/internal/domain"
)

const (
	table  = "users"
	entity = "user"
)

var (
	psql    = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	columns = []string{"id", "email", "password_hash", "role", "created_at"}
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id}, id)
}

// GetByEmail returns a user by email address, compared case-insensitively.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, sq.Eq{"lower(email)": domain.NormalizeEmail(email)}, uuid.Nil)
}

// Create inserts a new user. A duplicate email yields domain.ErrAlreadyExists.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	sql, args, err := psql.Insert(table).
		Columns(columns...).
		Values(u.ID, u.Email, u.PasswordHash, string(u.Role), u.CreatedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert %s: %w", table, err)
	}

	created, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, u.ID)
	}
	return &created, nil
}

// Delete removes the user; owned records and tokens cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	sql, args, err := psql.Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, entity, id)
	}
	return nil
}

// UpdateRole sets the role of a user and returns the updated row.
func (r *Repo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) (*domain.User, error) {
	sql, args, err := psql.Update(table).
		Set("role", string(role)).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update %s: %w", table, err)
	}

	u, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &u, nil
}

// List returns users ordered by creation time, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	sql, args, err := psql.Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	defer rows.Close()

	users := make([]domain.User, 0, limit)
	for rows.Next() {
		u, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, entity, uuid.Nil)
	}
	return users, nil
}

// Count returns the number of registered users.
func (r *Repo) Count(ctx context.Context) (int, error) {
	sql, args, err := psql.Select("count(*)").From(table).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", table, err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, uuid.Nil)
	}
	return n, nil
}

func (r *Repo) getOne(ctx context.Context, where sq.Eq, id uuid.UUID) (*domain.User, error) {
	sql, args, err := psql.Select(columns...).From(table).Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", table, err)
	}

	u, err := scan(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, id)
	}
	return &u, nil
}

func scan(row pgx.Row) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &role, &u.CreatedAt)
	u.Role = domain.UserRole(role)
	u.CreatedAt = u.CreatedAt.UTC()
	return u, err
}
