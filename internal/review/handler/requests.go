package handler

import (
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
)

// decisionRequest is the action dialog's wire form. AmountCents is typed, so
// a non-numeric or fractional-cent amount fails JSON decoding before any
// domain logic runs.
type decisionRequest struct {
	Decision    string `json:"decision"`
	Note        string `json:"note"`
	AmountCents int64  `json:"amount_cents,omitempty"`
}

func (r decisionRequest) validate() map[string]string {
	errs := map[string]string{}
	if r.Decision == "" {
		errs["decision"] = "decision is required"
	}
	if r.AmountCents < 0 {
		errs["amount_cents"] = "amount_cents must not be negative"
	}
	return errs
}

// itemResponse is the queue entry wire form: the shared envelope plus
// response-only extras (e.g. presigned document links) and the decisions a
// reviewer may take from the item's current status.
type itemResponse[P any] struct {
	review.Item[P]
	Extra            map[string]any    `json:"extra,omitempty"`
	AllowedDecisions []review.Decision `json:"allowed_decisions,omitempty"`
}

type queueResponse[P any] struct {
	Items []itemResponse[P] `json:"items"`
}
