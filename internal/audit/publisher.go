package audit

import (
	"context"
	"log/slog"
	"time"
)

// Publisher accepts structured audit events from domain services and hands
// them to the worker's inbox. Emission never blocks a reviewer action: when
// the inbox is full the event is dropped with a warning rather than stalling
// the write path.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	select {
	case p.inbox <- event:
		return nil
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"domain", event.Domain,
		)
		return nil
	}
}
