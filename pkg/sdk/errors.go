package toprank

import "github.com/rehui/toprank/internal/domain"

// ErrRankingUnavailable is returned when the ranking store cannot answer.
// Use errors.Is() to check.
var ErrRankingUnavailable = domain.ErrRankingUnavailable
