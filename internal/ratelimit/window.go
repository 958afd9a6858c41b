// Package ratelimit holds the pure window arithmetic for the quota system.
// All boundaries are computed in UTC so that every instance sharing the
// ledger agrees on window identity regardless of local timezone.
package ratelimit

import (
	"time"

	"jyotish/backend/internal/model"
)

// Start returns the inclusive start of the window containing now.
func Start(kind model.WindowKind, now time.Time) time.Time {
	utc := now.UTC()
	switch kind {
	case model.WindowMinute:
		return utc.Truncate(time.Minute)
	case model.WindowDay:
		return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// End returns the exclusive end of the window containing now.
func End(kind model.WindowKind, now time.Time) time.Time {
	start := Start(kind, now)
	switch kind {
	case model.WindowMinute:
		return start.Add(time.Minute)
	case model.WindowDay:
		return start.AddDate(0, 0, 1)
	default:
		return start.AddDate(0, 1, 0)
	}
}

// RetryAfter returns the time remaining until the window containing now
// rolls over, rounded up to whole seconds for use in a Retry-After header.
func RetryAfter(kind model.WindowKind, now time.Time) time.Duration {
	remaining := End(kind, now).Sub(now.UTC())
	if remaining <= 0 {
		return 0
	}
	rounded := remaining.Truncate(time.Second)
	if rounded < remaining {
		rounded += time.Second
	}
	return rounded
}
