// Package payments defines the payout boundary. The review workflow treats a
// transfer as an opaque call with a success or failure result; no payment
// protocol detail crosses into this repository.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// TransferRequest asks the provider to move assigned funds to a cause owner.
type TransferRequest struct {
	CauseID     string `json:"cause_id"`
	OwnerID     string `json:"owner_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

// Receipt is the provider's acknowledgement of a transfer.
type Receipt struct {
	ProviderRef   string    `json:"provider_ref"`
	TransferredAt time.Time `json:"transferred_at"`
}

// Provider is the payout collaborator. Implementations must be safe for
// concurrent use.
type Provider interface {
	Transfer(ctx context.Context, req TransferRequest) (Receipt, error)
}

// HTTPProvider speaks to the payout backend over plain JSON HTTP.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPProvider(baseURL, apiKey string, logger *slog.Logger) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (p *HTTPProvider) Transfer(ctx context.Context, req TransferRequest) (Receipt, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("marshal transfer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/transfers", bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("build transfer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return Receipt{}, fmt.Errorf("transfer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return Receipt{}, fmt.Errorf("transfer rejected with status %d", resp.StatusCode)
	}

	var receipt Receipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return Receipt{}, fmt.Errorf("decode transfer receipt: %w", err)
	}

	p.logger.InfoContext(ctx, "payout transfer accepted",
		"cause_id", req.CauseID,
		"amount_cents", req.AmountCents,
		"provider_ref", receipt.ProviderRef,
	)
	return receipt, nil
}

// NoopProvider accepts every transfer without moving money. Used in
// development when no payout backend is configured.
type NoopProvider struct{}

func (NoopProvider) Transfer(_ context.Context, req TransferRequest) (Receipt, error) {
	return Receipt{
		ProviderRef:   "noop-" + req.Reference,
		TransferredAt: time.Now(),
	}, nil
}
