package audit

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence boundary for audit events. Implementations are
// append-only; events are never mutated after the fact, only marked published
// once relayed to Kafka.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}

// OutboxStore extends Store for backends that participate in the Kafka relay.
type OutboxStore interface {
	Store
	// ListUnpublished returns up to limit events not yet relayed, oldest first,
	// keyed by their outbox entry ID.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
}

// OutboxEntry pairs an event with its outbox row identity.
type OutboxEntry struct {
	ID    uuid.UUID
	Event Event
}
