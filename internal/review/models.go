package review

import (
	"time"

	"github.com/google/uuid"
)

// Status labels where a reviewable item sits in its workflow. Every domain's
// status set includes StatusPending as the initial state plus one or more
// terminal states; the legal moves between them live in a Transitions table.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSpam      Status = "spam"
	StatusFunded    Status = "funded"
	StatusCompleted Status = "completed"

	// StatusAll is the queue filter value meaning no status filter.
	StatusAll Status = ""
)

// Decision names a reviewer action collected by the action dialog.
type Decision string

const (
	DecisionApprove     Decision = "approve"
	DecisionReject      Decision = "reject"
	DecisionMarkSpam    Decision = "mark_spam"
	DecisionAssignFunds Decision = "assign_funds"
	DecisionComplete    Decision = "complete"
)

// Item is the shared reviewable envelope. The payload carries domain-specific
// fields; everything else is common to every workflow instance.
//
// AmountRaisedCents is only meaningful for fund-bearing domains (causes) and
// stays zero elsewhere. Amounts are minor currency units throughout, so a
// non-numeric or fractional-cent amount cannot be represented.
type Item[P any] struct {
	ID                uuid.UUID  `json:"id"`
	Status            Status     `json:"status"`
	Payload           P          `json:"payload"`
	SubmittedBy       string     `json:"submitted_by"`
	AmountRaisedCents int64      `json:"amount_raised_cents,omitempty"`
	ReviewedBy        string     `json:"reviewed_by,omitempty"`
	ReviewNotes       string     `json:"review_notes,omitempty"`
	ReviewedAt        *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Action is the ephemeral record built from a reviewer's dialog submission.
// It is handed to the service once and discarded after the write succeeds.
type Action struct {
	ItemID      uuid.UUID
	Decision    Decision
	Note        string
	AmountCents int64
}

// Reviewer identifies the acting moderator. It stamps the write and the audit
// trail; authorization happened earlier, at the transport layer.
type Reviewer struct {
	ID     string
	Name   string
	Device string
}
