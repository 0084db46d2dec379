package review

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

// InMemoryStore keeps items in memory for tests and for running the server
// without Postgres. Insertion order is preserved so listings are stable.
type InMemoryStore[P any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]Item[P]
	order []uuid.UUID
}

func NewInMemoryStore[P any]() *InMemoryStore[P] {
	return &InMemoryStore[P]{items: make(map[uuid.UUID]Item[P])}
}

func (s *InMemoryStore[P]) Insert(_ context.Context, item Item[P]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.items[item.ID]; exists {
		return sentinel.ErrConflict
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return nil
}

func (s *InMemoryStore[P]) Get(_ context.Context, id uuid.UUID) (Item[P], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return Item[P]{}, sentinel.ErrNotFound
	}
	return item, nil
}

func (s *InMemoryStore[P]) ListByStatus(_ context.Context, status Status, limit int) ([]Item[P], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item[P]
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		item := s.items[s.order[i]]
		if status == StatusAll || item.Status == status {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *InMemoryStore[P]) Update(_ context.Context, item Item[P]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.items[item.ID] = item
	return nil
}
