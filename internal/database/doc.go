// Package database implements the domain repositories on PostgreSQL via
// pgx. Queries are plain SQL with positional arguments; dynamic listing
// clauses are assembled by a small builder that whitelists sortable
// columns, so no request input ever reaches SQL unescaped.
package database
