package history

import (
	"context"
	"sync"
)

// MemoryStore keeps records in memory (dev/test use).
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make([]Record, 0)}
}

func (s *MemoryStore) Append(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) QueryByUsername(ctx context.Context, username string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Record, 0)
	for _, rec := range s.records {
		if rec.Involves(username) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
