package deliverylog

import "context"

// Store persists delivery log entries with keyed upsert semantics: at most
// one current row per Key, the latest dispatch outcome winning. Both
// channels use the same path so retries and concurrent fan-out cannot
// produce duplicate rows.
type Store interface {
	// Upsert inserts the entry or, when a row for the same Key exists,
	// overwrites its outcome while keeping the original ID and CreatedAt.
	Upsert(ctx context.Context, entry Entry) error

	// Get retrieves the current entry for key.
	Get(ctx context.Context, key Key) (*Entry, error)

	// ListByUser returns all current entries for a user.
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
}
