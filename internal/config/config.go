package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config is the application configuration, loaded from environment
// variables. DATABASE_URL is the only required setting; everything else
// has a development-friendly default.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	RedisURL    string
	LogLevel    string
	LogFormat   string

	// StatsCacheTTLSeconds bounds how stale the cached city aggregation
	// may get. Zero disables caching even when RedisURL is set.
	StatsCacheTTLSeconds int

	// S3Region is used by `dealdeck seed` when importing from S3.
	S3Region string
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		S3Region:    getEnv("S3_REGION", ""),
	}

	ttl, err := getEnvInt("STATS_CACHE_TTL_SECONDS", 300)
	if err != nil {
		return nil, err
	}
	cfg.StatsCacheTTLSeconds = ttl

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if ttl < 0 {
		return nil, fmt.Errorf("STATS_CACHE_TTL_SECONDS must not be negative")
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be \"text\" or \"json\", got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
