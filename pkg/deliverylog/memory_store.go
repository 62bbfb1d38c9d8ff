package deliverylog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory implementation of Store.
// Suitable for development and testing.
type MemoryStore struct {
	entries map[Key]Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory delivery log store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]Entry)}
}

func validateEntry(entry Entry) error {
	if entry.UserID == "" || entry.NotificationType == "" || entry.Channel == "" || entry.Recipient == "" {
		return fmt.Errorf("%w: composite key fields are required", ErrInvalidEntry)
	}
	if entry.Status == StatusSent && entry.SentAt == nil {
		return fmt.Errorf("%w: sent entries require sent_at", ErrInvalidEntry)
	}
	if entry.Status == StatusSent && entry.SkipReason != "" {
		return fmt.Errorf("%w: sent entries must not carry a skip reason", ErrInvalidEntry)
	}
	return nil
}

func (s *MemoryStore) Upsert(ctx context.Context, entry Entry) error {
	if err := validateEntry(entry); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := entry.Key()
	if existing, ok := s.entries[key]; ok {
		// Identity and creation time survive overwrites.
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	} else {
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = time.Now()
		}
	}

	s.entries[key] = entry
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrEntryNotFound
	}
	out := entry
	return &out, nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID string) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []Entry
	for _, e := range s.entries {
		if e.UserID == userID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}
