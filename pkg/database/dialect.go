package database

import (
	"fmt"
	"strings"
)

// Dialect captures the SQL differences between supported drivers.
type Dialect string

const (
	MySQL    Dialect = "mysql"
	Postgres Dialect = "postgres"
)

// Placeholder returns the bind parameter for the n-th argument (1-based).
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Placeholders returns count comma-separated bind parameters starting at start.
func (d Dialect) Placeholders(start, count int) string {
	ps := make([]string, count)
	for i := range count {
		ps[i] = d.Placeholder(start + i)
	}
	return strings.Join(ps, ", ")
}

// ContainsOp returns the case-insensitive pattern match operator.
func (d Dialect) ContainsOp() string {
	if d == Postgres {
		return "ILIKE"
	}
	return "LIKE"
}
