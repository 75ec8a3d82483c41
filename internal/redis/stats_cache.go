package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dealdeck/dealdeck/internal/domain"
	"github.com/dealdeck/dealdeck/internal/metrics"
)

const cityStatsKey = "stats:cities"

// statsSource is the slice of the deal repository the cache needs.
type statsSource interface {
	CityStats(ctx context.Context) ([]domain.CityStat, error)
}

// StatsCache provides read-through caching for the city aggregation:
// Redis GET, then PostgreSQL, then a best-effort Redis SET with TTL.
// Writes to deals must call Invalidate so the next read recomputes.
type StatsCache struct {
	rdb    goredis.Cmdable
	source statsSource
	ttl    time.Duration
}

// NewStatsCache creates a read-through city-stats cache.
func NewStatsCache(rdb goredis.Cmdable, source statsSource, ttl time.Duration) *StatsCache {
	return &StatsCache{rdb: rdb, source: source, ttl: ttl}
}

// CityStats returns the aggregation, preferring the cached copy.
func (c *StatsCache) CityStats(ctx context.Context) ([]domain.CityStat, error) {
	data, err := c.rdb.Get(ctx, cityStatsKey).Bytes()
	if err == nil {
		var stats []domain.CityStat
		if err := json.Unmarshal(data, &stats); err != nil {
			slog.Warn("failed to unmarshal cached city stats, falling through to postgres", "error", err)
		} else {
			metrics.StatsCacheHits.Inc()
			return stats, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		slog.Warn("redis city stats GET failed, falling through to postgres", "error", err)
	}

	stats, err := c.source.CityStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("city stats lookup failed: %w", err)
	}
	metrics.StatsCacheMisses.Inc()

	if encoded, err := json.Marshal(stats); err == nil {
		if err := c.rdb.Set(ctx, cityStatsKey, encoded, c.ttl).Err(); err != nil {
			slog.Warn("failed to populate city stats cache", "error", err)
		}
	}
	return stats, nil
}

// Invalidate drops the cached aggregation.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, cityStatsKey).Err(); err != nil {
		slog.Warn("failed to invalidate city stats cache", "error", err)
	}
}
