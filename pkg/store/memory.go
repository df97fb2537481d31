package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps reports in process memory. Used by tests and by the
// service when no MongoDB is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*Report)}
}

// Save persists a report.
func (s *MemoryStore) Save(ctx context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

// Load retrieves a report by run ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	cp := *r
	return &cp, nil
}

// List returns the most recent reports, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Report, 0, len(s.reports))
	for _, r := range s.reports {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
