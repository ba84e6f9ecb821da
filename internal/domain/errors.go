package domain

import "errors"

var (
	// ErrRankingUnavailable signals that the ranking table could not be read.
	ErrRankingUnavailable = errors.New("ranking unavailable")
	// ErrInvalidParameter signals a request parameter that cannot be parsed.
	ErrInvalidParameter = errors.New("invalid parameter")
)
