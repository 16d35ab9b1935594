package renewal

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps renewals in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	renewals map[uuid.UUID]*Renewal
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{renewals: make(map[uuid.UUID]*Renewal)}
}

func (s *MemoryStore) Save(_ context.Context, r *Renewal) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renewals[r.ID] = r.Clone()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Renewal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.renewals[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r.Clone(), nil
}

func (s *MemoryStore) List(_ context.Context) ([]*Renewal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Renewal, 0, len(s.renewals))
	for _, r := range s.renewals {
		out = append(out, r.Clone())
	}
	slices.SortFunc(out, compareCreated)
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.renewals[id]; !ok {
		return ErrNotFound
	}
	delete(s.renewals, id)
	return nil
}

func compareCreated(a, b *Renewal) int {
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	return slices.Compare(a.ID[:], b.ID[:])
}
