package ranking

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rehui/toprank/internal/domain"
	domrank "github.com/rehui/toprank/internal/domain/ranking"
	logpkg "github.com/rehui/toprank/internal/logger"
)

// Service answers top-N ranking lookups.
type Service struct {
	repo         Repository
	logger       *zap.Logger
	queryTimeout time.Duration
	newTraceID   func() string
}

// New creates a ranking service.
func New(repo Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:       repo,
		logger:     logger.Named("rank"),
		newTraceID: NewTraceID,
	}
}

// WithQueryTimeout bounds each store round trip. Zero disables the bound.
func (s *Service) WithQueryTimeout(d time.Duration) *Service {
	s.queryTimeout = d
	return s
}

// NewTraceID returns a 12 hex character correlation id.
func NewTraceID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:6])
}

// TopRank returns the highest scored listings, optionally restricted to a city
// and/or make (exact match, empty = any). limit is clamped to [1, 50].
//
// Store failures are logged in full and reported as domain.ErrRankingUnavailable;
// the underlying error is not returned to the caller.
func (s *Service) TopRank(ctx context.Context, limit int, city, vehicleMake string) ([]domrank.Row, error) {
	traceID := s.newTraceID()
	q := domrank.NewQuery(limit, city, vehicleMake)

	log := logpkg.FromContextOr(ctx, s.logger).With(zap.String("trace_id", traceID))
	log.Info("rank query started",
		zap.String("city", city),
		zap.String("make", vehicleMake),
		zap.Int("limit", q.Limit()),
	)

	if s.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.queryTimeout)
		defer cancel()
	}

	rows, err := s.repo.TopByScore(ctx, q)
	if err != nil {
		log.Error("rank query failed", zap.Error(err))
		return nil, fmt.Errorf("%w (trace %s)", domain.ErrRankingUnavailable, traceID)
	}

	log.Info("rank query succeeded", zap.Int("rows", len(rows)))
	return rows, nil
}
