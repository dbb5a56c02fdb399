// Package listing implements filtered, paginated and sorted retrieval over
// any per-user record table.
package listing

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/healthtrack-backend/internal/domain"
	"github.com/heartmarshall/healthtrack-backend/internal/query"
	"github.com/heartmarshall/healthtrack-backend/internal/schema"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	MaxQueryLen  = 128
)

// Source is the read contract of a record table.
type Source[T any] interface {
	Find(ctx context.Context, where query.Predicate, order []query.Order, limit, offset int) ([]T, error)
	Count(ctx context.Context, where query.Predicate) (int, error)
}

// Spec describes how one table is listed.
type Spec struct {
	// DateColumn is the primary timestamp; from/to bound it and it is the
	// default sort column.
	DateColumn string
	// SortColumns maps API field names to columns.
	SortColumns map[string]string
	// TextColumns are searched by q. Empty means q never filters.
	TextColumns []string
}

// Normalize applies defaults and bounds to raw list parameters.
func Normalize(p domain.ListParams) domain.ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit == 0:
		p.Limit = DefaultLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	// The offset (Page-1)*Limit must fit in an int.
	if maxPage := math.MaxInt/p.Limit + 1; p.Page > maxPage {
		p.Page = maxPage
	}
	p.Q = truncate(strings.TrimSpace(p.Q), MaxQueryLen)
	return p
}

// Where builds the filter predicate for userID and p.
func (s Spec) Where(userID uuid.UUID, p domain.ListParams) query.Predicate {
	return query.And{
		query.Eq{Column: schema.UserID, Value: userID},
		query.Range{Column: s.DateColumn, From: p.From, To: p.To},
		query.Contains{Columns: s.TextColumns, Text: p.Q},
	}
}

// Order resolves a sort expression such as "-createdAt". An empty or
// unknown field sorts by DateColumn; the primary key always breaks ties.
func (s Spec) Order(sort string) []query.Order {
	desc := true
	field := strings.TrimSpace(sort)
	if field != "" {
		desc = strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
	}

	column, ok := s.SortColumns[field]
	if !ok {
		column = s.DateColumn
	}

	return []query.Order{
		{Column: column, Desc: desc},
		{Column: schema.ID, Desc: desc},
	}
}

// List returns one page of userID's rows in src. Total counts every row
// matching the same filter regardless of page and limit.
func List[T any](ctx context.Context, src Source[T], spec Spec, userID uuid.UUID, params domain.ListParams) (domain.Page[T], error) {
	p := Normalize(params)
	where := spec.Where(userID, p)

	items, err := src.Find(ctx, where, spec.Order(p.Sort), p.Limit, (p.Page-1)*p.Limit)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list: find: %w", err)
	}
	total, err := src.Count(ctx, where)
	if err != nil {
		return domain.Page[T]{}, fmt.Errorf("list: count: %w", err)
	}
	if items == nil {
		items = []T{}
	}

	return domain.Page[T]{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Items: items,
	}, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
