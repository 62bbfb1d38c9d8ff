// Package relay forwards send requests to a same-origin-safe indirection
// service when a channel client cannot, or should not, reach its provider
// directly. Both channels share one endpoint; the payload carries the
// channel so the relay knows which provider to call.
package relay
