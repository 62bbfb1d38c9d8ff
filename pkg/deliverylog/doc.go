// Package deliverylog persists the outcome of every dispatch attempt.
//
// Entries are keyed by (user, notification type, channel, recipient) with at
// most one current row per key: a repeated send for the same key overwrites
// the previous outcome instead of inserting a duplicate. All three store
// implementations (memory, Postgres, Redis) apply the same upsert semantics
// for both channels.
package deliverylog
