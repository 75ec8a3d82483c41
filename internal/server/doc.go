// Package server exposes the HTTP API: deal CRUD, city statistics, the
// live WebSocket endpoint, health, and Prometheus metrics. Handlers
// translate between wire DTOs and domain types; business rules stay in
// the deals service.
package server
