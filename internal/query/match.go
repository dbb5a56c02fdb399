package query

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Row exposes column values of a record. ok is false when the row has no
// such column. A nil value is SQL NULL.
type Row interface {
	Value(column string) (v any, ok bool)
}

// Columns is a Row backed by a map.
type Columns map[string]any

func (c Columns) Value(column string) (any, bool) {
	v, ok := c[column]
	return v, ok
}

// Match evaluates p against row with SQL semantics: comparisons involving
// NULL or a missing column are false.
func Match(p Predicate, row Row) bool {
	switch p := p.(type) {
	case nil:
		return true
	case And:
		for _, sub := range p {
			if !Match(sub, row) {
				return false
			}
		}
		return true
	case Eq:
		v, ok := value(row, p.Column)
		if !ok {
			return false
		}
		return compare(v, deref(p.Value)) == 0
	case Range:
		v, ok := value(row, p.Column)
		if !ok {
			return false
		}
		t, isTime := v.(time.Time)
		if !isTime {
			return false
		}
		if p.From != nil && t.Before(*p.From) {
			return false
		}
		if p.To != nil && t.After(*p.To) {
			return false
		}
		return true
	case Contains:
		if p.IsEmpty() {
			return true
		}
		needle := strings.ToLower(p.Text)
		for _, col := range p.Columns {
			v, ok := value(row, col)
			if !ok {
				continue
			}
			if s, isStr := v.(string); isStr && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	case NotNull:
		_, ok := value(row, p.Column)
		return ok
	default:
		panic(fmt.Sprintf("query: unsupported predicate %T", p))
	}
}

// Less reports whether a sorts before b under orders. NULLs sort last in
// ascending order and first in descending order, as in PostgreSQL.
func Less(orders []Order, a, b Row) bool {
	for _, o := range orders {
		av, aok := value(a, o.Column)
		bv, bok := value(b, o.Column)

		var c int
		switch {
		case !aok && !bok:
			c = 0
		case !aok:
			c = 1
		case !bok:
			c = -1
		default:
			c = compare(av, bv)
		}
		if o.Desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
	}
	return false
}

// value returns the dereferenced column value; ok is false for NULL.
func value(row Row, column string) (any, bool) {
	v, ok := row.Value(column)
	if !ok {
		return nil, false
	}
	v = deref(v)
	return v, v != nil
}

func deref(v any) any {
	switch x := v.(type) {
	case *float64:
		if x == nil {
			return nil
		}
		return *x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *int:
		if x == nil {
			return nil
		}
		return float64(*x)
	case int:
		return float64(x)
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case *uuid.UUID:
		if x == nil {
			return nil
		}
		return *x
	case *bool:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func compare(a, b any) int {
	switch x := a.(type) {
	case float64:
		y, ok := b.(float64)
		if !ok {
			return -2
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case string:
		y, ok := b.(string)
		if !ok {
			return -2
		}
		return strings.Compare(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return -2
		}
		return x.Compare(y)
	case uuid.UUID:
		y, ok := b.(uuid.UUID)
		if !ok {
			return -2
		}
		return strings.Compare(x.String(), y.String())
	case bool:
		y, ok := b.(bool)
		if !ok {
			return -2
		}
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
	return -2
}
