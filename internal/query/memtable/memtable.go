// Package memtable is an in-memory record table evaluated with query.Match.
// It mirrors the read contract of the Postgres record repositories and backs
// engine tests that must not depend on a database.
package memtable

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

// Table stores rows of T. RowOf exposes a row's columns and DateColumn names
// the column holding the primary timestamp.
type Table[T any] struct {
	RowOf      func(T) query.Row
	DateColumn string

	// Err, when set, is returned by every read.
	Err error

	mu   sync.RWMutex
	rows []T
}

// New creates an empty table.
func New[T any](dateColumn string, rowOf func(T) query.Row) *Table[T] {
	return &Table[T]{RowOf: rowOf, DateColumn: dateColumn}
}

// Add appends rows.
func (t *Table[T]) Add(items ...T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = append(t.rows, items...)
}

// Insert appends one row.
func (t *Table[T]) Insert(_ context.Context, item T) error {
	if t.Err != nil {
		return t.Err
	}
	t.Add(item)
	return nil
}

// Delete removes the row with id owned by userID. A missing or foreign row
// yields domain.ErrNotFound.
func (t *Table[T]) Delete(_ context.Context, userID, id uuid.UUID) error {
	if t.Err != nil {
		return t.Err
	}
	owned := query.And{
		query.Eq{Column: schema.ID, Value: id},
		query.Eq{Column: schema.UserID, Value: userID},
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, item := range t.rows {
		if query.Match(owned, t.RowOf(item)) {
			t.rows = slices.Delete(t.rows, i, i+1)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Update replaces the row with id owned by userID with fn applied to it and
// returns the new row.
func (t *Table[T]) Update(_ context.Context, userID, id uuid.UUID, fn func(T) T) (T, error) {
	var zero T
	if t.Err != nil {
		return zero, t.Err
	}
	owned := query.And{
		query.Eq{Column: schema.ID, Value: id},
		query.Eq{Column: schema.UserID, Value: userID},
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	for i, item := range t.rows {
		if query.Match(owned, t.RowOf(item)) {
			t.rows[i] = fn(item)
			return t.rows[i], nil
		}
	}
	return zero, domain.ErrNotFound
}

// Len returns the number of stored rows.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Find returns the rows matching where, ordered, then sliced by offset and limit.
// A limit <= 0 returns every remaining row.
func (t *Table[T]) Find(_ context.Context, where query.Predicate, order []query.Order, limit, offset int) ([]T, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	matched := t.filter(where)
	slices.SortStableFunc(matched, func(a, b T) int {
		switch {
		case query.Less(order, t.RowOf(a), t.RowOf(b)):
			return -1
		case query.Less(order, t.RowOf(b), t.RowOf(a)):
			return 1
		}
		return 0
	})

	if offset >= len(matched) {
		return []T{}, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// Count returns the number of rows matching where.
func (t *Table[T]) Count(_ context.Context, where query.Predicate) (int, error) {
	if t.Err != nil {
		return 0, t.Err
	}
	return len(t.filter(where)), nil
}

// FindRecentDays returns the rows matching where whose UTC day is among the
// most recent days distinct days that have a matching row.
func (t *Table[T]) FindRecentDays(_ context.Context, where query.Predicate, days int) ([]T, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	matched := t.filter(where)

	var all []string
	for _, item := range matched {
		if d, ok := t.day(item); ok && !slices.Contains(all, d) {
			all = append(all, d)
		}
	}
	slices.Sort(all)
	if len(all) > days {
		all = all[len(all)-days:]
	}

	out := make([]T, 0, len(matched))
	for _, item := range matched {
		if d, ok := t.day(item); ok && slices.Contains(all, d) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (t *Table[T]) filter(where query.Predicate) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.rows))
	for _, item := range t.rows {
		if query.Match(where, t.RowOf(item)) {
			out = append(out, item)
		}
	}
	return out
}

func (t *Table[T]) day(item T) (string, bool) {
	v, ok := t.RowOf(item).Value(t.DateColumn)
	if !ok {
		return "", false
	}
	ts, ok := v.(time.Time)
	if !ok {
		return "", false
	}
	return domain.DayOf(ts), true
}
