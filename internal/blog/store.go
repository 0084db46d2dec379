package blog

import (
	"context"

	"github.com/google/uuid"
)

// Store is the persistence boundary for posts and their revision history.
type Store interface {
	GetPost(ctx context.Context, id uuid.UUID) (Post, error)
	// UpdatePostContent overwrites the post's content fields; last write wins.
	UpdatePostContent(ctx context.Context, post Post) error
	InsertPost(ctx context.Context, post Post) error

	InsertRevision(ctx context.Context, rev Revision) error
	GetRevision(ctx context.Context, id uuid.UUID) (Revision, error)
	// ListRevisions returns a post's history newest-first.
	ListRevisions(ctx context.Context, postID uuid.UUID) ([]Revision, error)
}
