// Package verification is the artist identity verification workflow: artists
// submit documents, reviewers approve or reject them from the admin queue.
package verification

import (
	"context"
	"errors"
	"time"

	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
)

const Domain = "verification"

// Payload is the domain-specific part of a verification item. Documents live
// in object storage; the payload carries only their keys.
type Payload struct {
	ArtistID      string   `json:"artist_id"`
	DisplayName   string   `json:"display_name"`
	Discipline    string   `json:"discipline,omitempty"`
	DocumentKeys  []string `json:"document_keys"`
	ContactEmail  string   `json:"contact_email,omitempty"`
	PortfolioLink string   `json:"portfolio_link,omitempty"`
}

func (p Payload) Validate() error {
	if p.ArtistID == "" {
		return errors.New("artist_id is required")
	}
	if p.DisplayName == "" {
		return errors.New("display_name is required")
	}
	if len(p.DocumentKeys) == 0 {
		return errors.New("at least one document is required")
	}
	return nil
}

// Transitions returns the verification legality table.
func Transitions() review.Transitions {
	return review.ModerationTransitions()
}

// URLSigner produces time-bounded links for stored documents.
type URLSigner interface {
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// DocumentEnricher returns a queue-response enricher that resolves document
// keys into presigned URLs so reviewers can open them. With a nil signer the
// enricher is nil and responses carry keys only.
func DocumentEnricher(signer URLSigner, ttl time.Duration) func(ctx context.Context, item review.Item[Payload]) (map[string]any, error) {
	if signer == nil {
		return nil
	}
	return func(ctx context.Context, item review.Item[Payload]) (map[string]any, error) {
		urls := make([]string, 0, len(item.Payload.DocumentKeys))
		for _, key := range item.Payload.DocumentKeys {
			url, err := signer.PresignGet(ctx, key, ttl)
			if err != nil {
				return nil, err
			}
			urls = append(urls, url)
		}
		return map[string]any{"document_urls": urls}, nil
	}
}
