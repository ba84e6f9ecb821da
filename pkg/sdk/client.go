package toprank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rehui/toprank/internal/db"
	"github.com/rehui/toprank/internal/db/postgres"
	domrank "github.com/rehui/toprank/internal/domain/ranking"
	rankrepo "github.com/rehui/toprank/internal/repository/ranking"
	healthuc "github.com/rehui/toprank/internal/usecase/health"
	rankuc "github.com/rehui/toprank/internal/usecase/ranking"
)

const (
	defaultPort             = 5432
	defaultSSLMode          = "prefer"
	defaultReadinessTimeout = 10 * time.Second
	defaultQueryTimeout     = 5 * time.Second
)

// rankUseCase is the internal interface for ranking lookups, replaced in tests.
type rankUseCase interface {
	TopRank(ctx context.Context, limit int, city, vehicleMake string) ([]domrank.Row, error)
}

// Client is the toprank SDK entry point.
type Client struct {
	store     db.Store
	rankSvc   rankUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and waits for the database to answer.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		port:             defaultPort,
		sslMode:          defaultSSLMode,
		readinessTimeout: defaultReadinessTimeout,
		queryTimeout:     defaultQueryTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.host == "" || cfg.name == "" {
		return nil, errors.New("toprank: database host and name required (use WithPostgres)")
	}

	store, err := postgres.NewStore(ctx, postgres.Config{
		Host:     cfg.host,
		Port:     cfg.port,
		Name:     cfg.name,
		User:     cfg.user,
		Password: cfg.password,
		SSLMode:  cfg.sslMode,
		MaxConns: cfg.maxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("toprank: create postgres store: %w", err)
	}

	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("toprank: database not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return wireClient(store, cfg, obs), nil
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	// SDK callers observe through slog; the service's zap logger stays silent.
	rankSvc := rankuc.New(rankrepo.New(store), zap.NewNop()).WithQueryTimeout(cfg.queryTimeout)

	return &Client{
		store:     store,
		rankSvc:   rankSvc,
		healthSvc: healthuc.New(store, cfg.queryTimeout),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(opPing, start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Top returns the highest scored listings matching q, best first.
// Store failures wrap ErrRankingUnavailable.
func (c *Client) Top(ctx context.Context, q TopQuery) (listings []Listing, err error) {
	start := time.Now()
	defer func() { c.obs.observeTop(start, q, len(listings), err) }()

	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	rows, err := c.rankSvc.TopRank(ctx, limit, q.City, q.Make)
	if err != nil {
		return nil, fmt.Errorf("top: %w", err)
	}
	return listingsFromDomain(rows), nil
}
