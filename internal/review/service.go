package review

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/internal/audit"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review/metrics"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	request "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/request"
	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

// AuditPort matches the audit publisher. Defined here so the review core does
// not depend on how events are shipped.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Deps carries the service's cross-cutting collaborators. Every field is
// optional; a zero Deps gives a service that only reads and writes its store.
type Deps struct {
	Audit    AuditPort
	Guard    *Guard
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
	PageSize int
	Now      func() time.Time
}

// Service is the transition applier and queue view for one workflow domain.
// It enforces the domain's transition table server-side: an item can only
// move along a listed edge, regardless of which buttons a client renders.
type Service[P any] struct {
	domain      string
	store       Store[P]
	transitions Transitions
	deps        Deps
}

func NewService[P any](domain string, store Store[P], transitions Transitions, deps Deps) *Service[P] {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.PageSize <= 0 {
		deps.PageSize = 100
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service[P]{domain: domain, store: store, transitions: transitions, deps: deps}
}

// auditActions maps reviewer decisions to their audit event names.
var auditActions = map[Decision]audit.AuditEvent{
	DecisionApprove:     audit.EventItemApproved,
	DecisionReject:      audit.EventItemRejected,
	DecisionMarkSpam:    audit.EventItemMarkedSpam,
	DecisionAssignFunds: audit.EventFundsAssigned,
	DecisionComplete:    audit.EventCauseCompleted,
}

// Submit creates a pending item from an end-user submission.
func (s *Service[P]) Submit(ctx context.Context, payload P, submittedBy string) (Item[P], error) {
	if v, ok := any(payload).(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return Item[P]{}, dErrors.Wrap(dErrors.CodeInvalidInput, "invalid submission", err)
		}
	}

	now := s.deps.Now()
	item := Item[P]{
		ID:          uuid.New(),
		Status:      StatusPending,
		Payload:     payload,
		SubmittedBy: submittedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(ctx, item); err != nil {
		return Item[P]{}, dErrors.Wrap(dErrors.CodeInternal, "failed to store submission", err)
	}

	s.deps.Metrics.IncSubmission(s.domain)
	s.emit(ctx, audit.Event{
		Domain:  s.domain,
		ItemID:  item.ID,
		Action:  string(audit.EventItemSubmitted),
		ActorID: submittedBy,
	})
	return item, nil
}

// List is the queue view: items filtered by status, newest first, bounded to
// one page. Order comes from the store fetch, not from re-sorting here.
func (s *Service[P]) List(ctx context.Context, status Status) ([]Item[P], error) {
	if !s.transitions.KnownStatus(status) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "unknown status filter: "+string(status))
	}
	items, err := s.store.ListByStatus(ctx, status, s.deps.PageSize)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to fetch queue", err)
	}
	return items, nil
}

func (s *Service[P]) Get(ctx context.Context, id uuid.UUID) (Item[P], error) {
	item, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Item[P]{}, dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return Item[P]{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load item", err)
	}
	return item, nil
}

// Apply performs exactly one state-transition write for a reviewer action.
// On any failure the store is untouched; there is nothing to roll back.
func (s *Service[P]) Apply(ctx context.Context, action Action, reviewer Reviewer) (Item[P], error) {
	item, err := s.Get(ctx, action.ItemID)
	if err != nil {
		return Item[P]{}, err
	}

	rule, ok := s.transitions.Find(action.Decision, item.Status)
	if !ok {
		s.deps.Metrics.IncRejected(s.domain, "illegal_transition")
		return Item[P]{}, dErrors.New(dErrors.CodeConflict,
			"cannot "+string(action.Decision)+" an item in status "+string(item.Status))
	}

	if rule.NeedsAmount && action.AmountCents <= 0 {
		s.deps.Metrics.IncRejected(s.domain, "invalid_amount")
		return Item[P]{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be a positive number of cents")
	}

	if s.deps.Guard != nil {
		acquired, err := s.deps.Guard.Acquire(ctx, s.domain, action)
		if err != nil {
			// Redis trouble should not block moderation; log and continue.
			s.deps.Logger.WarnContext(ctx, "decision guard unavailable",
				"error", err,
				"domain", s.domain,
			)
		} else if !acquired {
			s.deps.Metrics.IncRejected(s.domain, "duplicate")
			return Item[P]{}, dErrors.New(dErrors.CodeConflict, "decision already submitted for this item")
		}
	}

	now := s.deps.Now()
	item.Status = rule.To
	item.ReviewedBy = reviewer.ID
	item.ReviewNotes = action.Note
	item.ReviewedAt = &now
	item.UpdatedAt = now
	if rule.NeedsAmount {
		item.AmountRaisedCents += action.AmountCents
	}

	if err := s.store.Update(ctx, item); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Item[P]{}, dErrors.New(dErrors.CodeNotFound, "item not found")
		}
		return Item[P]{}, dErrors.Wrap(dErrors.CodeInternal, "failed to apply decision", err)
	}

	s.deps.Metrics.IncTransition(s.domain, string(action.Decision))
	s.emit(ctx, audit.Event{
		Domain:      s.domain,
		ItemID:      item.ID,
		Action:      string(auditActions[action.Decision]),
		ActorID:     reviewer.ID,
		ActorName:   reviewer.Name,
		Decision:    string(action.Decision),
		Note:        action.Note,
		AmountCents: action.AmountCents,
		Device:      reviewer.Device,
	})
	return item, nil
}

// Domain returns the workflow instance name (verification, cause, comment).
func (s *Service[P]) Domain() string { return s.domain }

// Transitions exposes the legality table, for handlers that render available
// decisions next to each queue entry.
func (s *Service[P]) Transitions() Transitions { return s.transitions }

func (s *Service[P]) emit(ctx context.Context, event audit.Event) {
	if s.deps.Audit == nil {
		return
	}
	event.RequestID = request.GetRequestID(ctx)
	if err := s.deps.Audit.Emit(ctx, event); err != nil {
		s.deps.Logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"action", event.Action,
		)
	}
}
