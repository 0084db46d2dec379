package review

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

// PostgresStore persists one domain's items in the shared review_items table.
// Payloads are stored as JSONB so every domain shares the same envelope
// columns and differs only in payload shape.
type PostgresStore[P any] struct {
	db     *sql.DB
	domain string
}

func NewPostgresStore[P any](db *sql.DB, domain string) *PostgresStore[P] {
	return &PostgresStore[P]{db: db, domain: domain}
}

func (s *PostgresStore[P]) Insert(ctx context.Context, item Item[P]) error {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	query := `
		INSERT INTO review_items (
			id, domain, status, payload, submitted_by, amount_raised_cents,
			reviewed_by, review_notes, reviewed_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = s.db.ExecContext(ctx, query,
		item.ID, s.domain, string(item.Status), payload, item.SubmittedBy,
		item.AmountRaisedCents, item.ReviewedBy, item.ReviewNotes,
		item.ReviewedAt, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review item: %w", err)
	}
	return nil
}

func (s *PostgresStore[P]) Get(ctx context.Context, id uuid.UUID) (Item[P], error) {
	query := `
		SELECT id, status, payload, submitted_by, amount_raised_cents,
		       reviewed_by, review_notes, reviewed_at, created_at, updated_at
		FROM review_items
		WHERE domain = $1 AND id = $2
	`
	row := s.db.QueryRowContext(ctx, query, s.domain, id)
	item, err := scanItem[P](row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item[P]{}, sentinel.ErrNotFound
		}
		return Item[P]{}, fmt.Errorf("get review item: %w", err)
	}
	return item, nil
}

func (s *PostgresStore[P]) ListByStatus(ctx context.Context, status Status, limit int) ([]Item[P], error) {
	query := `
		SELECT id, status, payload, submitted_by, amount_raised_cents,
		       reviewed_by, review_notes, reviewed_at, created_at, updated_at
		FROM review_items
		WHERE domain = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, s.domain, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}
	defer rows.Close()

	var items []Item[P]
	for rows.Next() {
		item, err := scanItem[P](rows)
		if err != nil {
			return nil, fmt.Errorf("list review items: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PostgresStore[P]) Update(ctx context.Context, item Item[P]) error {
	payload, err := json.Marshal(item.Payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	query := `
		UPDATE review_items
		SET status = $3, payload = $4, amount_raised_cents = $5,
		    reviewed_by = $6, review_notes = $7, reviewed_at = $8, updated_at = $9
		WHERE domain = $1 AND id = $2
	`
	result, err := s.db.ExecContext(ctx, query,
		s.domain, item.ID, string(item.Status), payload, item.AmountRaisedCents,
		item.ReviewedBy, item.ReviewNotes, item.ReviewedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update review item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update review item: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem[P any](row rowScanner) (Item[P], error) {
	var (
		item       Item[P]
		status     string
		payload    []byte
		reviewedAt sql.NullTime
	)
	err := row.Scan(
		&item.ID, &status, &payload, &item.SubmittedBy, &item.AmountRaisedCents,
		&item.ReviewedBy, &item.ReviewNotes, &reviewedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return Item[P]{}, err
	}
	item.Status = Status(status)
	if reviewedAt.Valid {
		t := reviewedAt.Time
		item.ReviewedAt = &t
	}
	if err := json.Unmarshal(payload, &item.Payload); err != nil {
		return Item[P]{}, fmt.Errorf("unmarshal payload: %w", err)
	}
	return item, nil
}
