package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore persists audit events in the audit_events table, which doubles
// as the outbox for the Kafka relay: rows start unpublished and are flipped
// once produced.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	query := `
		INSERT INTO audit_events (
			id, category, occurred_at, domain, item_id, action,
			actor_id, actor_name, decision, note, amount_cents,
			request_id, device, published
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, FALSE)
	`
	var itemID *uuid.UUID
	if event.ItemID != uuid.Nil {
		itemID = &event.ItemID
	}
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		string(event.Category),
		event.Timestamp,
		event.Domain,
		itemID,
		event.Action,
		event.ActorID,
		event.ActorName,
		event.Decision,
		event.Note,
		event.AmountCents,
		event.RequestID,
		event.Device,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]Event, error) {
	query := `
		SELECT category, occurred_at, domain, item_id, action,
		       actor_id, actor_name, decision, note, amount_cents,
		       request_id, device
		FROM audit_events
		ORDER BY occurred_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, _, err := scanEvent(rows, false)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (s *PostgresStore) ListUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error) {
	query := `
		SELECT id, category, occurred_at, domain, item_id, action,
		       actor_id, actor_name, decision, note, amount_cents,
		       request_id, device
		FROM audit_events
		WHERE published = FALSE
		ORDER BY occurred_at ASC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list unpublished audit events: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		event, id, err := scanEvent(rows, true)
		if err != nil {
			return nil, err
		}
		entries = append(entries, OutboxEntry{ID: id, Event: event})
	}
	return entries, rows.Err()
}

func (s *PostgresStore) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE audit_events SET published = TRUE WHERE id = ANY($1)`,
		pq.Array(raw),
	)
	if err != nil {
		return fmt.Errorf("mark audit events published: %w", err)
	}
	return nil
}

func scanEvent(rows *sql.Rows, withID bool) (Event, uuid.UUID, error) {
	var (
		event     Event
		entryID   uuid.UUID
		category  string
		occurred  time.Time
		itemID    sql.NullString
		targets   []any
	)
	if withID {
		targets = append(targets, &entryID)
	}
	targets = append(targets,
		&category, &occurred, &event.Domain, &itemID, &event.Action,
		&event.ActorID, &event.ActorName, &event.Decision, &event.Note,
		&event.AmountCents, &event.RequestID, &event.Device,
	)
	if err := rows.Scan(targets...); err != nil {
		return Event{}, uuid.Nil, fmt.Errorf("scan audit event: %w", err)
	}
	event.Category = EventCategory(category)
	event.Timestamp = occurred
	if itemID.Valid {
		parsed, err := uuid.Parse(itemID.String)
		if err != nil {
			return Event{}, uuid.Nil, fmt.Errorf("parse audit item id: %w", err)
		}
		event.ItemID = parsed
	}
	return event, entryID, nil
}
