package history

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store in process memory. Records are copied on the
// way in and out.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	seq     map[string]int64
	next    int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
		seq:     make(map[string]int64),
	}
}

// Save stores a copy of rec.
func (m *MemoryStore) Save(ctx context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[rec.ID]; exists {
		return NewStorageError("memory", "save", fmt.Errorf("duplicate id %q", rec.ID))
	}
	m.records[rec.ID] = rec.clone()
	m.seq[rec.ID] = m.next
	m.next++
	return nil
}

// Get returns a copy of the record with the given ID.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.clone(), nil
}

// List returns copies of the records matching q, newest first.
func (m *MemoryStore) List(ctx context.Context, q Query) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := []*Record{}
	for _, rec := range m.sorted() {
		if !q.Since.IsZero() && rec.CreatedAt.Before(q.Since) {
			continue
		}
		if q.ErrorsOnly && !rec.HasErrors() {
			continue
		}
		records = append(records, rec.clone())
		if q.Limit > 0 && len(records) == q.Limit {
			break
		}
	}
	return records, nil
}

// Count returns the number of stored records.
func (m *MemoryStore) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.records)), nil
}

// DeleteBefore removes records created before cutoff.
func (m *MemoryStore) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	for id, rec := range m.records {
		if rec.CreatedAt.Before(cutoff) {
			m.remove(id)
			deleted++
		}
	}
	return deleted, nil
}

// DeleteOldest removes all but the newest keep records.
func (m *MemoryStore) DeleteOldest(ctx context.Context, keep int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	sorted := m.sorted()
	if int64(len(sorted)) <= keep {
		return 0, nil
	}

	var deleted int64
	for _, rec := range sorted[keep:] {
		m.remove(rec.ID)
		deleted++
	}
	return deleted, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

// sorted returns the stored records newest first, ties broken by insertion
// order. Callers hold the lock.
func (m *MemoryStore) sorted() []*Record {
	out := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out
}

func (m *MemoryStore) remove(id string) {
	delete(m.records, id)
	delete(m.seq, id)
}
