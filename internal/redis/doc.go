// Package redis provides the Redis-backed cache layer. Caching is always
// best-effort: a Redis failure logs a warning and falls through to
// PostgreSQL, never to the caller as an error.
package redis
