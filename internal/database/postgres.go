package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool and verifies it with a ping.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Info("database connected", "max_conns", poolCfg.MaxConns)
	return pool, nil
}

// Migrate applies the schema. Statements are idempotent so Migrate can run
// on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS hotels (
			id BIGSERIAL PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			city TEXT NOT NULL,
			country TEXT NOT NULL,
			phone TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hotels_city ON hotels(city)`,
		`CREATE TABLE IF NOT EXISTS deals (
			id BIGSERIAL PRIMARY KEY,
			external_id BIGINT UNIQUE NOT NULL,
			hotel_id BIGINT NOT NULL REFERENCES hotels(id) ON DELETE CASCADE,
			rating INT NOT NULL,
			room_type TEXT NOT NULL,
			price_per_night NUMERIC(10,2) NOT NULL,
			original_price NUMERIC(10,2) NOT NULL,
			discount_percent INT NOT NULL DEFAULT 0,
			checkin_date DATE NOT NULL,
			checkout_date DATE NOT NULL,
			is_available BOOLEAN NOT NULL DEFAULT TRUE,
			categories TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_hotel_id ON deals(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_rating ON deals(rating)`,
		`CREATE INDEX IF NOT EXISTS idx_deals_is_available ON deals(is_available)`,
	}

	for _, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	slog.Info("database migrations completed")
	return nil
}
