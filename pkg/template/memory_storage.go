package template

import (
	"context"
	"sync"
)

// MemoryStorage is an in-memory implementation of Storage.
// Suitable for development and testing.
type MemoryStorage struct {
	templates map[string]Template
	mu        sync.RWMutex
}

// NewMemoryStorage creates an empty in-memory template storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{templates: make(map[string]Template)}
}

// Put stores or replaces a template. Used by tests and dev seeding; the
// production write path belongs to the admin console.
func (s *MemoryStorage) Put(tpl Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tpl.Key] = tpl
}

func (s *MemoryStorage) GetByKey(ctx context.Context, key string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[key]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	// Return a copy to prevent external mutation of stored data.
	out := tpl
	return &out, nil
}
