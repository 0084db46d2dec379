package review

import (
	"context"
	"fmt"
	"time"

	platformredis "github.com/ihostcast/ArtistsAid-sub001/internal/platform/redis"
)

// Guard absorbs duplicate reviewer submissions: the admin UI has no
// double-click protection, so the same decision can arrive twice before the
// queue refreshes. A short-lived SETNX key per (domain, item, decision)
// rejects the second write.
//
// A nil *Guard is valid and means no deduplication; the transition table
// still makes a duplicate terminal decision fail legality.
type Guard struct {
	client *platformredis.Client
	ttl    time.Duration
}

func NewGuard(client *platformredis.Client, ttl time.Duration) *Guard {
	if client == nil {
		return nil
	}
	return &Guard{client: client, ttl: ttl}
}

// Acquire returns false when the same decision for the same item was already
// accepted within the guard window.
func (g *Guard) Acquire(ctx context.Context, domain string, action Action) (bool, error) {
	if g == nil {
		return true, nil
	}
	key := fmt.Sprintf("review:dedupe:%s:%s:%s", domain, action.ItemID, action.Decision)
	ok, err := g.client.SetNX(ctx, key, 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire decision guard: %w", err)
	}
	return ok, nil
}
