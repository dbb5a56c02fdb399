package domain

import "time"

// Window is an optional inclusive time range. A nil bound is open.
type Window struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

// ListParams are the sanitised list parameters accepted by every record
// list endpoint. Zero values mean "use the default".
type ListParams struct {
	Page  int
	Limit int
	Sort  string
	From  *time.Time
	To    *time.Time
	Q     string
}

// Page is one page of a filtered listing. Total counts every matching row
// regardless of Page and Limit.
type Page[T any] struct {
	Page  int
	Limit int
	Total int
	Items []T
}

// DayOf returns the UTC calendar date of t formatted as YYYY-MM-DD.
func DayOf(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
