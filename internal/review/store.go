package review

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence boundary for one domain's reviewable items.
// Implementations return sentinel errors for infrastructure facts; the
// service translates them into domain errors.
//
// Writes are last-write-wins on the whole row, matching the document-store
// semantics the workflow was built around. Items are never deleted here;
// removal is a separate super-admin concern outside the review workflow.
type Store[P any] interface {
	Insert(ctx context.Context, item Item[P]) error
	Get(ctx context.Context, id uuid.UUID) (Item[P], error)
	// ListByStatus returns items newest-first. StatusAll means no filter.
	// limit bounds the page; there is no cursor-based continuation.
	ListByStatus(ctx context.Context, status Status, limit int) ([]Item[P], error)
	Update(ctx context.Context, item Item[P]) error
}
