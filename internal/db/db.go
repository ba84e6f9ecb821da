package db

import (
	"context"
	"time"
)

// Store is the database facade used by the composition root.
type Store interface {
	Pinger
	Runner
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Row is one result row keyed by column name.
type Row map[string]any

// Runner executes parameterized read queries.
type Runner interface {
	Run(ctx context.Context, q *Query) ([]Row, error)
}

// Query is a SQL statement with positional ($n) arguments.
type Query struct {
	SQL  string
	Args []any
}
