// Package retry bounds transient-failure recovery for channel clients.
//
// Do wraps an operation in up to maxAttempts tries with linear backoff
// (attempt number times the base delay) between them. Callers are expected
// to wrap only the retryable portion of their work: validation and other
// pre-network checks either run before Do or mark their failures with
// Permanent so the loop aborts immediately.
package retry
