package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rehui/toprank/internal/db"
	"github.com/rehui/toprank/internal/metrics"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Postgres store.
type Config struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32 // 0 = pgxpool default
}

// DSN renders the connection URL. User and password are escaped.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// Store implements db.Store over a pgx connection pool.
// The pool is safe for concurrent use by in-flight requests.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates the pool. Connections are opened lazily; use WaitForReady
// to block until the server answers.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &db.Error{Op: db.OpConnect, Err: err}
	}

	return &Store{pool: pool}, nil
}

func poolConfig(cfg Config) (*pgxpool.Config, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("database name is required")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	return poolCfg, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() {
	s.pool.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for database: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// Run executes q and returns every row as a column-name keyed map, in server order.
func (s *Store) Run(ctx context.Context, q *db.Query) ([]db.Row, error) {
	start := time.Now()
	rows, err := s.run(ctx, q)
	metrics.ObserveStoreQuery(time.Since(start), err)
	return rows, err
}

func (s *Store) run(ctx context.Context, q *db.Query) ([]db.Row, error) {
	if q == nil || q.SQL == "" {
		return nil, db.ErrInvalidQuery
	}

	pgRows, err := s.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}

	records, err := pgx.CollectRows(pgRows, pgx.RowToMap)
	if err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}

	out := make([]db.Row, len(records))
	for i, rec := range records {
		for k, v := range rec {
			rec[k] = normalizeValue(v)
		}
		out[i] = rec
	}
	return out, nil
}

// normalizeValue converts pgx-specific decoded types to plain Go values so
// callers above the driver never import pgtype.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case pgtype.Numeric:
		f, err := t.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return uuid.UUID(t).String()
	default:
		return v
	}
}
