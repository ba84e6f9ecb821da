package chi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rehui/toprank/internal/domain"
	domrank "github.com/rehui/toprank/internal/domain/ranking"
	logpkg "github.com/rehui/toprank/internal/logger"
	healthuc "github.com/rehui/toprank/internal/usecase/health"
)

// RankingService answers top-N lookups.
type RankingService interface {
	TopRank(ctx context.Context, limit int, city, vehicleMake string) ([]domrank.Row, error)
}

// HealthChecker reports dependency health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the ranking API.
type Server struct {
	ranking       RankingService
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(ranking RankingService, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		ranking: ranking,
		health:  health,
		logger:  logger.Named("http"),
	}
	s.errorHandlers = []errorHandler{
		invalidParameterHandler,
		// The lookup answered, the store did not: HTTP 200 with a failure envelope.
		sentinelHandler(domain.ErrRankingUnavailable, http.StatusOK, CodeInternal, msgQueryFailed),
	}
	return s
}

// Register mounts every route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/", s.Home)
	r.Get("/ping", s.Ping)
	r.Get("/api/rank/top", s.TopRank)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// Ping handles GET /ping. It never touches the store.
func (s *Server) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"msg": "pong"})
}

// TopRank handles GET /api/rank/top?limit=&city=&make=.
func (s *Server) TopRank(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var limit *int
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &limit); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: limit must be an integer", domain.ErrInvalidParameter))
		return
	}
	var city, vehicleMake *string
	if err := runtime.BindQueryParameter("form", true, false, "city", query, &city); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: city must be a single value", domain.ErrInvalidParameter))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "make", query, &vehicleMake); err != nil {
		s.handleDomainError(w, r, fmt.Errorf("%w: make must be a single value", domain.ErrInvalidParameter))
		return
	}

	n := domrank.DefaultLimit
	if limit != nil {
		n = *limit
	}
	s.writeTop(w, r, n, deref(city), deref(vehicleMake))
}

// Home handles GET /: the unfiltered top 10.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.writeTop(w, r, domrank.HomeLimit, "", "")
}

func (s *Server) writeTop(w http.ResponseWriter, r *http.Request, limit int, city, vehicleMake string) {
	// [1, 50] is enforced here as well as in the service.
	limit = domrank.ClampLimit(limit, domrank.MaxLimit)

	rows, err := s.ranking.TopRank(r.Context(), limit, city, vehicleMake)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeSuccess(w, rowsToJSON(rows))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// sentinelHandler returns an errorHandler that matches a single sentinel error
// and answers with a fixed message.
func sentinelHandler(sentinel error, status, code int, message string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeFailure(w, status, code, message)
		return true
	}
}

// invalidParameterHandler echoes the parameter problem; those messages are built
// by this package and never carry store details.
func invalidParameterHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrInvalidParameter) {
		return false
	}
	writeFailure(w, http.StatusBadRequest, CodeBadRequest, err.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeFailure(w, http.StatusInternalServerError, CodeInternal, msgInternal)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
