package postgres

import (
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/healthtrack-backend/internal/query"
)

// psql is the statement builder for PostgreSQL ($n placeholders).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Sqlizer translates a typed predicate into a squirrel condition.
// A nil result means "no condition".
func Sqlizer(p query.Predicate) (sq.Sqlizer, error) {
	switch p := p.(type) {
	case nil:
		return nil, nil
	case query.And:
		parts := make(sq.And, 0, len(p))
		for _, sub := range p {
			s, err := Sqlizer(sub)
			if err != nil {
				return nil, err
			}
			if s != nil {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 {
			return nil, nil
		}
		return parts, nil
	case query.Eq:
		if err := checkColumn(p.Column); err != nil {
			return nil, err
		}
		return sq.Eq{p.Column: p.Value}, nil
	case query.Range:
		if err := checkColumn(p.Column); err != nil {
			return nil, err
		}
		if p.IsEmpty() {
			return nil, nil
		}
		parts := sq.And{}
		if p.From != nil {
			parts = append(parts, sq.GtOrEq{p.Column: *p.From})
		}
		if p.To != nil {
			parts = append(parts, sq.LtOrEq{p.Column: *p.To})
		}
		return parts, nil
	case query.Contains:
		if p.IsEmpty() {
			return nil, nil
		}
		pattern := "%" + escapeLike(p.Text) + "%"
		parts := make(sq.Or, 0, len(p.Columns))
		for _, col := range p.Columns {
			if err := checkColumn(col); err != nil {
				return nil, err
			}
			parts = append(parts, sq.ILike{col: pattern})
		}
		return parts, nil
	case query.NotNull:
		if err := checkColumn(p.Column); err != nil {
			return nil, err
		}
		return sq.NotEq{p.Column: nil}, nil
	default:
		return nil, fmt.Errorf("postgres: unsupported predicate %T", p)
	}
}

// orderBy renders ORDER BY terms.
func orderBy(orders []query.Order) ([]string, error) {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		if err := checkColumn(o.Column); err != nil {
			return nil, err
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		out = append(out, o.Column+" "+dir)
	}
	return out, nil
}

func checkColumn(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("postgres: invalid column name %q", name)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
