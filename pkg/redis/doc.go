// Package redis provides the connection helper for the optional
// Redis-backed delivery log store.
package redis
