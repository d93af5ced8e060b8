package db

import (
	"fmt"
	"strings"
)

// Dialect selects placeholder syntax for the backing database.
type Dialect int

const (
	Postgres Dialect = iota
	SQLite
)

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Placeholder returns the n-th (1-based) bind placeholder.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

// InClause renders a membership filter on col for vals along with its bind args.
// SQLite cannot bind a slice, so only the placeholder list is interpolated;
// values stay parameterized.
func (d Dialect) InClause(col string, vals []string) (string, []any) {
	if d == Postgres {
		return col + " = ANY($1::text[])", []any{vals}
	}

	ph := make([]string, len(vals))
	args := make([]any, len(vals))
	for i, v := range vals {
		ph[i] = "?"
		args[i] = v
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(ph, ",")), args
}
