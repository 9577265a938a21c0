// internal/storage/snapshot/memory.go
package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/newthinker/pnlboard/internal/core"
)

// MemoryStore is a bounded in-memory snapshot index. The oldest records
// are dropped once maxSize is exceeded; the archived objects remain.
type MemoryStore struct {
	records []Record
	maxSize int
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store with max capacity.
func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize < 1 {
		maxSize = 1
	}
	return &MemoryStore{
		records: make([]Record, 0, maxSize),
		maxSize: maxSize,
	}
}

// Save adds a record to the store.
func (m *MemoryStore) Save(ctx context.Context, rec Record) error {
	if rec.ID == "" {
		return fmt.Errorf("snapshot record without id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, rec)

	// Trim if over capacity (remove oldest)
	if len(m.records) > m.maxSize {
		m.records = m.records[len(m.records)-m.maxSize:]
	}

	return nil
}

// GetByID retrieves a record by ID.
func (m *MemoryStore) GetByID(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.records {
		if m.records[i].ID == id {
			rec := m.records[i]
			return &rec, nil
		}
	}
	return nil, core.WrapError(core.ErrNotFound, fmt.Errorf("snapshot %s", id))
}

// List returns records matching the filter, newest first.
func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []Record{}
	for i := len(m.records) - 1; i >= 0; i-- {
		if matches(m.records[i], filter) {
			result = append(result, m.records[i])
		}
	}

	// Apply offset and limit
	if filter.Offset >= len(result) {
		return []Record{}, nil
	}
	if filter.Offset > 0 {
		result = result[filter.Offset:]
	}

	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}

	return result, nil
}

// Count returns the count of matching records.
func (m *MemoryStore) Count(ctx context.Context, filter ListFilter) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, rec := range m.records {
		if matches(rec, filter) {
			count++
		}
	}
	return count, nil
}

func matches(rec Record, filter ListFilter) bool {
	if filter.Strategy != "" && rec.Strategy != filter.Strategy {
		return false
	}
	if !filter.From.IsZero() && rec.CreatedAt.Before(filter.From) {
		return false
	}
	if !filter.To.IsZero() && rec.CreatedAt.After(filter.To) {
		return false
	}
	return true
}
