package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
)

type fakeSigner struct {
	err error
}

func (f fakeSigner) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://store.test/" + key + "?sig=abc", nil
}

func TestDocumentEnricher(t *testing.T) {
	ctx := context.Background()
	item := review.Item[Payload]{
		Payload: Payload{
			ArtistID:     "artist-1",
			DisplayName:  "Ana",
			Discipline:   "painting",
			DocumentKeys: []string{"docs/id.pdf", "docs/portfolio.pdf"},
		},
	}

	t.Run("resolves every key to a signed link", func(t *testing.T) {
		enrich := DocumentEnricher(fakeSigner{}, time.Minute)
		require.NotNil(t, enrich)

		extra, err := enrich(ctx, item)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://store.test/docs/id.pdf?sig=abc",
			"https://store.test/docs/portfolio.pdf?sig=abc",
		}, extra["document_urls"])
	})

	t.Run("signer failure surfaces", func(t *testing.T) {
		enrich := DocumentEnricher(fakeSigner{err: errors.New("bucket gone")}, time.Minute)

		_, err := enrich(ctx, item)
		assert.Error(t, err)
	})

	t.Run("nil signer means no enricher", func(t *testing.T) {
		assert.Nil(t, DocumentEnricher(nil, time.Minute))
	})

	t.Run("no documents gives an empty list", func(t *testing.T) {
		enrich := DocumentEnricher(fakeSigner{}, time.Minute)
		extra, err := enrich(ctx, review.Item[Payload]{})
		require.NoError(t, err)
		assert.Empty(t, extra["document_urls"])
	})
}

func TestPayloadValidate(t *testing.T) {
	valid := Payload{
		ArtistID:     "artist-1",
		DisplayName:  "Ana",
		Discipline:   "painting",
		DocumentKeys: []string{"docs/id.pdf"},
		ContactEmail: "ana@example.com",
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing fields fail", func(t *testing.T) {
		cases := map[string]Payload{
			"artist id":    {DisplayName: "Ana", Discipline: "painting", DocumentKeys: []string{"k"}},
			"display name": {ArtistID: "a", Discipline: "painting", DocumentKeys: []string{"k"}},
			"documents":    {ArtistID: "a", DisplayName: "Ana", Discipline: "painting"},
		}
		for name, payload := range cases {
			t.Run(name, func(t *testing.T) {
				assert.Error(t, payload.Validate())
			})
		}
	})
}
