// Package query defines typed row predicates and orderings shared by the
// record store and its callers. Predicates are data: the Postgres adapter
// translates them to SQL and Match evaluates them against in-memory rows.
package query

import "time"

// Predicate is a boolean condition over a single row.
type Predicate interface {
	isPredicate()
}

// And holds when every member holds. An empty And matches every row.
type And []Predicate

// Eq holds when Column equals Value.
type Eq struct {
	Column string
	Value  any
}

// Range holds when Column lies inside [From, To]. A nil bound is open.
type Range struct {
	Column string
	From   *time.Time
	To     *time.Time
}

// Contains holds when any of Columns contains Text, case-insensitively.
// Empty Text matches every row.
type Contains struct {
	Columns []string
	Text    string
}

// NotNull holds when Column has a value.
type NotNull struct {
	Column string
}

func (And) isPredicate()      {}
func (Eq) isPredicate()       {}
func (Range) isPredicate()    {}
func (Contains) isPredicate() {}
func (NotNull) isPredicate()  {}

// Order is one ORDER BY term.
type Order struct {
	Column string
	Desc   bool
}

// Asc and Desc build single-column orders.
func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

// IsEmpty reports whether the range has no bounds.
func (r Range) IsEmpty() bool {
	return r.From == nil && r.To == nil
}

// IsEmpty reports whether the filter is a no-op.
func (c Contains) IsEmpty() bool {
	return c.Text == "" || len(c.Columns) == 0
}
