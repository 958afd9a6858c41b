package service

import (
	"errors"
	"fmt"
	"time"

	"jyotish/backend/internal/model"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnresolved means no credential could be matched to the request.
	// Distinct from a rate-limit denial: retrying the same request cannot
	// succeed.
	ErrUnresolved = errors.New("no credential resolved")

	// ErrStorageUnavailable means the ledger could not be read or written in
	// time. Always treated as deny; an unverifiable quota is never assumed
	// satisfied.
	ErrStorageUnavailable = errors.New("usage storage unavailable")

	// ErrChartUpstream means the ephemeris engine failed or was unreachable.
	ErrChartUpstream = errors.New("ephemeris engine failed")
)

// RateLimitError reports which window's limit was reached and when the
// caller may retry.
type RateLimitError struct {
	Kind       model.WindowKind
	Limit      int64
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded: %d per %s", e.Limit, e.Kind)
}
