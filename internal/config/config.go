package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Addr              string
	DBPath            string
	EphemerisURL      string
	LogLevel          string
	SnowflakeNode     int64
	LedgerTimeout     time.Duration
	RetentionInterval time.Duration
	RetentionMargin   time.Duration
	EnableSwagger     bool
}

func Load() Config {
	addr := os.Getenv("JYOTISH_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	path := os.Getenv("JYOTISH_DB_PATH")
	if path == "" {
		path = "./data/jyotish.db"
	}
	epheURL := os.Getenv("JYOTISH_EPHEMERIS_URL")
	if epheURL == "" {
		epheURL = "http://127.0.0.1:5000"
	}

	return Config{
		Addr:              addr,
		DBPath:            filepath.Clean(path),
		EphemerisURL:      epheURL,
		LogLevel:          os.Getenv("JYOTISH_LOG_LEVEL"),
		SnowflakeNode:     envInt64("JYOTISH_SNOWFLAKE_NODE", 0),
		LedgerTimeout:     envDuration("JYOTISH_LEDGER_TIMEOUT", 3*time.Second),
		RetentionInterval: envDuration("JYOTISH_RETENTION_SWEEP_INTERVAL", time.Hour),
		RetentionMargin:   envDuration("JYOTISH_RETENTION_MARGIN", 62*24*time.Hour),
		EnableSwagger:     os.Getenv("JYOTISH_DISABLE_SWAGGER") == "",
	}
}

func envInt64(key string, fallback int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
