package cause

import (
	"context"
	"log/slog"

	"github.com/ihostcast/ArtistsAid-sub001/internal/payments"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
)

// Service wraps the generic review service with the payout side effect of
// fund assignment. All other decisions pass straight through.
type Service struct {
	*review.Service[Payload]
	payouts payments.Provider
	logger  *slog.Logger
}

func NewService(reviews *review.Service[Payload], payouts payments.Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Service: reviews, payouts: payouts, logger: logger}
}

// Apply intercepts fund assignment to call the payout provider before the
// transition write. If the provider rejects the transfer the item stays
// approved and nothing is written. If the write fails after a successful
// transfer the mismatch is logged for reconciliation; the write is not
// retried, matching the workflow's single-write contract.
func (s *Service) Apply(ctx context.Context, action review.Action, reviewer review.Reviewer) (review.Item[Payload], error) {
	if action.Decision != review.DecisionAssignFunds || s.payouts == nil {
		return s.Service.Apply(ctx, action, reviewer)
	}

	item, err := s.Service.Get(ctx, action.ItemID)
	if err != nil {
		return review.Item[Payload]{}, err
	}

	// Pre-check legality and amount so a doomed decision never reaches the
	// payment provider.
	if _, ok := s.Transitions().Find(action.Decision, item.Status); !ok {
		return review.Item[Payload]{}, dErrors.New(dErrors.CodeConflict,
			"cannot assign funds to a cause in status "+string(item.Status))
	}
	if action.AmountCents <= 0 {
		return review.Item[Payload]{}, dErrors.New(dErrors.CodeInvalidInput, "amount must be a positive number of cents")
	}

	currency := item.Payload.Currency
	if currency == "" {
		currency = "USD"
	}
	receipt, err := s.payouts.Transfer(ctx, payments.TransferRequest{
		CauseID:     item.ID.String(),
		OwnerID:     item.Payload.OwnerID,
		AmountCents: action.AmountCents,
		Currency:    currency,
		Reference:   item.ID.String() + ":" + string(action.Decision),
	})
	if err != nil {
		return review.Item[Payload]{}, dErrors.Wrap(dErrors.CodeInternal, "payout transfer failed", err)
	}

	updated, err := s.Service.Apply(ctx, action, reviewer)
	if err != nil {
		s.logger.ErrorContext(ctx, "transfer succeeded but transition write failed, needs reconciliation",
			"cause_id", item.ID,
			"provider_ref", receipt.ProviderRef,
			"error", err,
		)
		return review.Item[Payload]{}, err
	}

	s.logger.InfoContext(ctx, "funds assigned",
		"cause_id", updated.ID,
		"amount_cents", action.AmountCents,
		"provider_ref", receipt.ProviderRef,
	)
	return updated, nil
}
