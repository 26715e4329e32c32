package db

import (
	"context"
	"fmt"
	"time"

	"eventcast/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

const fingerprintSchema = `
CREATE TABLE IF NOT EXISTS distribution_fingerprints (
	fingerprint TEXT PRIMARY KEY,
	channel     TEXT NOT NULL,
	status      TEXT NOT NULL,
	external_id TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	expires_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_distribution_fingerprints_expires_at
	ON distribution_fingerprints (expires_at);
`

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	dsn := cfg.BuildDSN()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MaxConnLifetime = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, fingerprintSchema); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ensure fingerprint schema: %w", err)
	}

	cleanup := func() {
		pool.Close()
	}

	return pool, cleanup, nil
}
