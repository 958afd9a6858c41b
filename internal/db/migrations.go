package db

import (
	"database/sql"
	"fmt"
)

// Base schema - uses Snowflake IDs (no AUTOINCREMENT)
const baseSchema = `
CREATE TABLE IF NOT EXISTS credentials (
  id INTEGER PRIMARY KEY,
  kind TEXT NOT NULL CHECK (kind IN ('key', 'domain')),
  identifier TEXT NOT NULL,
  label TEXT NOT NULL,
  description TEXT,
  limit_minute INTEGER NOT NULL DEFAULT 0,
  limit_day INTEGER NOT NULL DEFAULT 0,
  limit_month INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_credentials_kind_identifier ON credentials(kind, identifier);

CREATE TABLE IF NOT EXISTS usage_counters (
  id INTEGER PRIMARY KEY,
  credential_id INTEGER NOT NULL,
  window_kind TEXT NOT NULL CHECK (window_kind IN ('minute', 'day', 'month')),
  window_start TEXT NOT NULL,
  count INTEGER NOT NULL DEFAULT 0,
  updated_at TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_usage_counters_window ON usage_counters(credential_id, window_kind, window_start);

CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("migrate base schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

func runMigrations(db *sql.DB) error {
	// Migration 1: index for the retention sweep (scan by window_start alone)
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_usage_counters_start ON usage_counters(window_start)`); err != nil {
		return fmt.Errorf("create idx_usage_counters_start: %w", err)
	}

	// Migration 2: add last_used_at column to credentials if not exists
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('credentials') WHERE name = 'last_used_at'
	`).Scan(&count)
	if err != nil {
		return fmt.Errorf("check last_used_at column: %w", err)
	}

	if count == 0 {
		if _, err := db.Exec(`ALTER TABLE credentials ADD COLUMN last_used_at TEXT`); err != nil {
			return fmt.Errorf("add last_used_at column: %w", err)
		}
	}

	return nil
}
