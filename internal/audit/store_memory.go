package audit

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemoryStore keeps audit events in memory for tests and for running the
// server without Postgres. It also satisfies OutboxStore so the Kafka relay
// can be exercised hermetically.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []outboxRecord
}

type outboxRecord struct {
	id        uuid.UUID
	event     Event
	published bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, outboxRecord{id: uuid.New(), event: event})
	return nil
}

func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.entries[i].event)
	}
	return out, nil
}

func (s *InMemoryStore) ListUnpublished(_ context.Context, limit int) ([]OutboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []OutboxEntry
	for _, rec := range s.entries {
		if rec.published {
			continue
		}
		out = append(out, OutboxEntry{ID: rec.id, Event: rec.event})
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, ids []uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	marked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		marked[id] = true
	}
	for i := range s.entries {
		if marked[s.entries[i].id] {
			s.entries[i].published = true
		}
	}
	return nil
}
