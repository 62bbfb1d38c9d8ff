// Package pg provides the Postgres connection pool and schema migrations
// backing the engine's two persisted entities: notification templates and
// the delivery log.
package pg
