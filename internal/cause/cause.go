// Package cause is the cause approval and funding workflow. Causes pass
// moderation like any reviewable item, then move through the funding
// lifecycle: assigned funds make them funded, and funded causes are closed
// out as completed.
package cause

import (
	"errors"

	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
)

const Domain = "cause"

// Payload is the domain-specific part of a cause item. Amounts are minor
// currency units; the raised total lives on the shared envelope.
type Payload struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Category             string `json:"category,omitempty"`
	OwnerID              string `json:"owner_id"`
	AmountRequestedCents int64  `json:"amount_requested_cents"`
	Currency             string `json:"currency,omitempty"`
}

func (p Payload) Validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.OwnerID == "" {
		return errors.New("owner_id is required")
	}
	if p.AmountRequestedCents < 0 {
		return errors.New("amount_requested_cents must not be negative")
	}
	return nil
}

// Transitions returns the cause legality table including the funding edges.
func Transitions() review.Transitions {
	return review.CauseTransitions()
}
