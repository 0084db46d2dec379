package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with financial or legal significance.
	// These require tamper-proof storage and long retention.
	// Examples: fund assignment, payout completion, verification decisions.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	// Examples: rejected admin tokens, repeated illegal transition attempts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled or aggregated with shorter retention.
	// Examples: submissions, comment moderation, revision restores.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key reviewer actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// Domain names the workflow instance (verification, cause, comment, blog).
	Domain string
	ItemID uuid.UUID
	Action string
	// ActorID and ActorName identify the reviewer who performed the action;
	// empty for end-user submissions.
	ActorID   string
	ActorName string
	Decision  string
	Note      string
	// AmountCents is set for fund-assignment events, in minor currency units.
	AmountCents int64
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// Device is a human-readable description of the actor's client, parsed
	// from the User-Agent header.
	Device string
}

type AuditEvent string

const (
	EventItemSubmitted  AuditEvent = "item_submitted"
	EventItemApproved   AuditEvent = "item_approved"
	EventItemRejected   AuditEvent = "item_rejected"
	EventItemMarkedSpam AuditEvent = "item_marked_spam"
	EventFundsAssigned  AuditEvent = "funds_assigned"
	EventCauseCompleted AuditEvent = "cause_completed"

	EventRevisionRestored AuditEvent = "revision_restored"

	EventAdminTokenRejected AuditEvent = "admin_token_rejected"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	// Compliance events - money moved or an identity decision was made
	EventItemApproved:   CategoryCompliance,
	EventItemRejected:   CategoryCompliance,
	EventFundsAssigned:  CategoryCompliance,
	EventCauseCompleted: CategoryCompliance,

	// Security events
	EventAdminTokenRejected: CategorySecurity,

	// Operations events - routine activity, can be sampled
	EventItemSubmitted:    CategoryOperations,
	EventItemMarkedSpam:   CategoryOperations,
	EventRevisionRestored: CategoryOperations,
}

// Category returns the event's category, defaulting to operations for
// unmapped actions.
func (e AuditEvent) Category() EventCategory {
	if category, ok := eventCategories[e]; ok {
		return category
	}
	return CategoryOperations
}
