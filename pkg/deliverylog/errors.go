package deliverylog

import "errors"

var (
	// ErrEntryNotFound is returned when no row exists for a key.
	ErrEntryNotFound = errors.New("deliverylog.errors.entry_not_found")
	// ErrInvalidEntry is returned when an entry is missing part of its
	// composite key or violates a status invariant.
	ErrInvalidEntry = errors.New("deliverylog.errors.invalid_entry")
	// ErrStorageFailure wraps backend write/read errors.
	ErrStorageFailure = errors.New("deliverylog.errors.storage_failure")
)
