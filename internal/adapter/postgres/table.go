package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/healthtrack-backend/internal/query"
)

// Table describes a per-user record table for Store.
type Table[T any] struct {
	// Name is the SQL table name; Entity is used in error messages.
	Name   string
	Entity string
	// Columns are selected and inserted in this order. The first column is "id".
	Columns []string
	// DateColumn is the primary timestamp used for day bucketing.
	DateColumn string
	// Scan reads one row selected with Columns.
	Scan func(row pgx.Row) (T, error)
	// Values returns insert values aligned with Columns.
	Values func(item T) []any
	// ID returns the primary key of item.
	ID func(item T) uuid.UUID
}

// Store implements the generic read/insert/delete contract over a Table.
type Store[T any] struct {
	pool  *pgxpool.Pool
	table Table[T]
}

// NewStore creates a Store for the given table.
func NewStore[T any](pool *pgxpool.Pool, table Table[T]) *Store[T] {
	return &Store[T]{pool: pool, table: table}
}

// Insert persists a new row.
func (s *Store[T]) Insert(ctx context.Context, item T) error {
	sql, args, err := psql.Insert(s.table.Name).
		Columns(s.table.Columns...).
		Values(s.table.Values(item)...).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", s.table.Name, err)
	}

	if _, err := QuerierFromCtx(ctx, s.pool).Exec(ctx, sql, args...); err != nil {
		return MapError(err, s.table.Entity, s.table.ID(item))
	}
	return nil
}

// Find returns rows matching where, ordered, limited and offset.
// A limit <= 0 means no limit.
func (s *Store[T]) Find(ctx context.Context, where query.Predicate, order []query.Order, limit, offset int) ([]T, error) {
	b, err := s.selectWhere(where)
	if err != nil {
		return nil, err
	}

	terms, err := orderBy(order)
	if err != nil {
		return nil, err
	}
	b = b.OrderBy(terms...)
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	return s.query(ctx, b)
}

// Count returns the number of rows matching where.
func (s *Store[T]) Count(ctx context.Context, where query.Predicate) (int, error) {
	cond, err := Sqlizer(where)
	if err != nil {
		return 0, err
	}

	sql, args, err := psql.Select("COUNT(*)").From(s.table.Name).Where(cond).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count %s: %w", s.table.Name, err)
	}

	var n int
	if err := QuerierFromCtx(ctx, s.pool).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, MapError(err, s.table.Entity, uuid.Nil)
	}
	return n, nil
}

// FindRecentDays returns rows matching where whose UTC day of DateColumn is
// among the most recent days distinct days having a matching row, ordered
// by DateColumn ascending.
func (s *Store[T]) FindRecentDays(ctx context.Context, where query.Predicate, days int) ([]T, error) {
	if days <= 0 {
		return []T{}, nil
	}

	cond, err := Sqlizer(where)
	if err != nil {
		return nil, err
	}
	if err := checkColumn(s.table.DateColumn); err != nil {
		return nil, err
	}
	day := fmt.Sprintf("(%s AT TIME ZONE 'UTC')::date", s.table.DateColumn)

	subSQL, subArgs, err := sq.Select(day + " AS day").
		Distinct().
		From(s.table.Name).
		Where(cond).
		OrderBy("day DESC").
		Limit(uint64(days)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recent days %s: %w", s.table.Name, err)
	}

	b := psql.Select(s.table.Columns...).
		From(s.table.Name).
		Where(cond).
		Where(sq.Expr(day+" IN ("+subSQL+")", subArgs...)).
		OrderBy(s.table.DateColumn+" ASC", "id ASC")

	return s.query(ctx, b)
}

// Delete removes the row with id owned by userID. A missing or foreign row
// yields domain.ErrNotFound.
func (s *Store[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	sql, args, err := psql.Delete(s.table.Name).
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", s.table.Name, err)
	}

	tag, err := QuerierFromCtx(ctx, s.pool).Exec(ctx, sql, args...)
	if err != nil {
		return MapError(err, s.table.Entity, id)
	}
	if tag.RowsAffected() == 0 {
		return MapError(pgx.ErrNoRows, s.table.Entity, id)
	}
	return nil
}

// SetFlag sets a boolean column to true on the row with id owned by userID
// and returns the updated row.
func (s *Store[T]) SetFlag(ctx context.Context, userID, id uuid.UUID, column string) (T, error) {
	var zero T
	if err := checkColumn(column); err != nil {
		return zero, err
	}

	sql, args, err := psql.Update(s.table.Name).
		Set(column, true).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + strings.Join(s.table.Columns, ", ")).
		ToSql()
	if err != nil {
		return zero, fmt.Errorf("build update %s: %w", s.table.Name, err)
	}

	item, err := s.table.Scan(QuerierFromCtx(ctx, s.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return zero, MapError(err, s.table.Entity, id)
	}
	return item, nil
}

func (s *Store[T]) selectWhere(where query.Predicate) (sq.SelectBuilder, error) {
	cond, err := Sqlizer(where)
	if err != nil {
		return sq.SelectBuilder{}, err
	}
	return psql.Select(s.table.Columns...).From(s.table.Name).Where(cond), nil
}

func (s *Store[T]) query(ctx context.Context, b sq.SelectBuilder) ([]T, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", s.table.Name, err)
	}

	rows, err := QuerierFromCtx(ctx, s.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, MapError(err, s.table.Entity, uuid.Nil)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := s.table.Scan(rows)
		if err != nil {
			return nil, MapError(err, s.table.Entity, uuid.Nil)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, s.table.Entity, uuid.Nil)
	}
	return out, nil
}
