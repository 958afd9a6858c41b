//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"time"

	"jyotish/backend/internal/model"
	"jyotish/backend/internal/ratelimit"
	"jyotish/backend/internal/repository"
	"jyotish/backend/pkg/logger"
)

// RateLimitService decides whether a resolved credential may consume one
// request now.
type RateLimitService interface {
	// Check returns nil when the request is admitted. A *RateLimitError
	// names the violated window; ErrStorageUnavailable means the ledger
	// could not be consulted and the request is denied.
	Check(ctx context.Context, cred model.Credential, now time.Time) error
}

type rateLimitService struct {
	ledger  repository.UsageRepository
	timeout time.Duration
}

// NewRateLimitService creates a rate limiter over the usage ledger. Each
// ledger operation is bounded by timeout; an overrun denies the request.
func NewRateLimitService(ledger repository.UsageRepository, timeout time.Duration) RateLimitService {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &rateLimitService{ledger: ledger, timeout: timeout}
}

// Check walks the window kinds tightest-first. The first denial
// short-circuits so the looser windows never consume quota for a request
// that is not admitted.
func (s *rateLimitService) Check(ctx context.Context, cred model.Credential, now time.Time) error {
	for _, kind := range model.WindowKinds() {
		limit := cred.Limit(kind)

		opCtx, cancel := context.WithTimeout(ctx, s.timeout)
		_, allowed, err := s.ledger.IncrementIfUnderLimit(opCtx, cred.ID, kind, now, limit)
		cancel()

		if err != nil {
			// Fail closed. The underlying error stays in the logs and never
			// reaches the caller.
			logger.Error("usage ledger unavailable", "credential", cred.ID, "window", kind, "error", err)
			return ErrStorageUnavailable
		}
		if !allowed {
			return &RateLimitError{
				Kind:       kind,
				Limit:      limit,
				RetryAfter: ratelimit.RetryAfter(kind, now),
			}
		}
	}
	return nil
}
