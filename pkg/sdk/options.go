package toprank

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	host     string
	port     int
	name     string
	user     string
	password string
	sslMode  string
	maxConns int32

	readinessTimeout time.Duration
	queryTimeout     time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPostgres sets the ranking database connection parameters.
func WithPostgres(host string, port int, name, user, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.host = host
		c.port = port
		c.name = name
		c.user = user
		c.password = password
	})
}

// WithSSLMode sets the libpq sslmode. Default: prefer.
func WithSSLMode(mode string) Option {
	return optionFunc(func(c *clientConfig) {
		c.sslMode = mode
	})
}

// WithMaxConns caps the connection pool size. 0 keeps the pool default.
func WithMaxConns(n int32) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxConns = n
	})
}

// WithReadinessTimeout bounds the initial wait for the database. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithQueryTimeout bounds each ranking query. Default: 5s, 0 disables.
func WithQueryTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.queryTimeout = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
