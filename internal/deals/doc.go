// Package deals holds the business logic between the HTTP handlers and
// the repositories: pagination envelopes, computed hotel ratings, and
// cache invalidation on writes.
package deals
