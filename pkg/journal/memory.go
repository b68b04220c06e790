package journal

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps journal entries in memory. It backs tests and runs
// with the journal disabled; nothing survives the process.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Record implements Store.
func (s *MemoryStore) Record(ctx context.Context, entry *Entry) error {
	if entry == nil {
		return NewStorageError("record", errNilEntry)
	}
	applyDefaults(entry)

	copied := *entry
	copied.DueTiers = append([]string(nil), entry.DueTiers...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &copied)
	return nil
}

// Recent implements Store.
func (s *MemoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Walk backwards so entries sharing a timestamp come back in reverse
	// insertion order, matching the SQLite store.
	sorted := make([]*Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		sorted = append(sorted, s.entries[i])
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].StartedAt.After(sorted[b].StartedAt)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

// LastCompleted implements Store.
func (s *MemoryStore) LastCompleted(ctx context.Context) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var last *Entry
	for _, entry := range s.entries {
		if entry.Outcome != OutcomeCompleted {
			continue
		}
		if last == nil || entry.StartedAt.After(last.StartedAt) {
			last = entry
		}
	}
	return last, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}
