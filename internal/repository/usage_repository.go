//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jyotish/backend/internal/model"
	"jyotish/backend/internal/ratelimit"
	"jyotish/backend/pkg/snowflake"
)

// UsageRepository is the usage ledger: one row per (credential, window kind,
// window start), incremented atomically while under the configured limit.
type UsageRepository interface {
	CurrentCount(ctx context.Context, credentialID int64, kind model.WindowKind, now time.Time) (int64, error)
	IncrementIfUnderLimit(ctx context.Context, credentialID int64, kind model.WindowKind, now time.Time, limit int64) (int64, bool, error)
	WindowCounts(ctx context.Context, credentialID int64, now time.Time) (map[model.WindowKind]int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type usageRepository struct {
	db *sql.DB
}

// NewUsageRepository creates a new usage ledger over the given database.
func NewUsageRepository(db *sql.DB) UsageRepository {
	return &usageRepository{db: db}
}

// CurrentCount returns the count for the window containing now, 0 if no row
// exists yet.
func (r *usageRepository) CurrentCount(ctx context.Context, credentialID int64, kind model.WindowKind, now time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `
		SELECT count FROM usage_counters WHERE credential_id = ? AND window_kind = ? AND window_start = ?
	`, credentialID, string(kind), formatTime(ratelimit.Start(kind, now))).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// IncrementIfUnderLimit reads-or-creates the current-window row and
// increments it only while the pre-increment count is strictly below limit.
// The check and the increment execute as a single conditional upsert, so two
// racing requests cannot both observe count == limit-1 and overshoot: SQLite
// serializes the write and the WHERE clause re-evaluates against the
// committed row.
//
// Returns the post-increment count and whether the request was admitted. On
// denial the row is unchanged and the returned count is the current one.
func (r *usageRepository) IncrementIfUnderLimit(ctx context.Context, credentialID int64, kind model.WindowKind, now time.Time, limit int64) (int64, bool, error) {
	if limit <= 0 {
		// Deny-all. No row is created; an existing row stays untouched.
		count, err := r.CurrentCount(ctx, credentialID, kind, now)
		if err != nil {
			return 0, false, err
		}
		return count, false, nil
	}

	windowStart := formatTime(ratelimit.Start(kind, now))
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO usage_counters (id, credential_id, window_kind, window_start, count, updated_at)
		VALUES (?, ?, ?, ?, 1, ?)
		ON CONFLICT(credential_id, window_kind, window_start)
		DO UPDATE SET count = count + 1, updated_at = excluded.updated_at
		WHERE usage_counters.count < ?
		RETURNING count
	`, snowflake.NextID(), credentialID, string(kind), windowStart, formatTime(now), limit)

	var count int64
	if err := row.Scan(&count); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The conditional update matched no row: limit reached.
			current, cerr := r.CurrentCount(ctx, credentialID, kind, now)
			if cerr != nil {
				return 0, false, cerr
			}
			return current, false, nil
		}
		return 0, false, err
	}
	return count, true, nil
}

// WindowCounts returns the current counts across all three window kinds.
func (r *usageRepository) WindowCounts(ctx context.Context, credentialID int64, now time.Time) (map[model.WindowKind]int64, error) {
	counts := make(map[model.WindowKind]int64, 3)
	for _, kind := range model.WindowKinds() {
		count, err := r.CurrentCount(ctx, credentialID, kind, now)
		if err != nil {
			return nil, err
		}
		counts[kind] = count
	}
	return counts, nil
}

// DeleteExpired removes counters whose window started before the cutoff.
// Orphaned counters of deleted credentials age out through the same sweep.
func (r *usageRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM usage_counters WHERE window_start < ?
	`, formatTime(before.UTC()))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
