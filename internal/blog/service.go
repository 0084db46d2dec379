package blog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/internal/audit"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	request "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/request"
	"github.com/ihostcast/ArtistsAid-sub001/pkg/platform/sentinel"
)

// AuditPort matches the audit publisher.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service manages post revision history. Restore is a content overwrite, not
// a status transition: the live post takes the revision's content fields and
// the history keeps every entry.
type Service struct {
	store  Store
	audit  AuditPort
	logger *slog.Logger
	now    func() time.Time
}

func NewService(store Store, auditPort AuditPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, audit: auditPort, logger: logger, now: time.Now}
}

func (s *Service) GetPost(ctx context.Context, id uuid.UUID) (Post, error) {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Post{}, dErrors.New(dErrors.CodeNotFound, "post not found")
		}
		return Post{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load post", err)
	}
	return post, nil
}

func (s *Service) ListRevisions(ctx context.Context, postID uuid.UUID) ([]Revision, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	revisions, err := s.store.ListRevisions(ctx, postID)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "failed to list revisions", err)
	}
	return revisions, nil
}

// Restore overwrites the live post's content fields with a prior revision's.
// The current content is snapshotted into the history first, so the restore
// itself can be undone the same way.
func (s *Service) Restore(ctx context.Context, postID, revisionID uuid.UUID, reviewer review.Reviewer) (Post, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return Post{}, err
	}

	rev, err := s.store.GetRevision(ctx, revisionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return Post{}, dErrors.New(dErrors.CodeNotFound, "revision not found")
		}
		return Post{}, dErrors.Wrap(dErrors.CodeInternal, "failed to load revision", err)
	}
	if rev.PostID != post.ID {
		return Post{}, dErrors.New(dErrors.CodeBadRequest, "revision does not belong to this post")
	}

	now := s.now()
	snapshot := Revision{
		ID:        uuid.New(),
		PostID:    post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Excerpt:   post.Excerpt,
		CreatedAt: now,
	}
	if err := s.store.InsertRevision(ctx, snapshot); err != nil {
		return Post{}, dErrors.Wrap(dErrors.CodeInternal, "failed to snapshot current content", err)
	}

	post.Title = rev.Title
	post.Content = rev.Content
	post.Excerpt = rev.Excerpt
	post.UpdatedAt = now
	if err := s.store.UpdatePostContent(ctx, post); err != nil {
		return Post{}, dErrors.Wrap(dErrors.CodeInternal, "failed to restore revision", err)
	}

	if s.audit != nil {
		event := audit.Event{
			Domain:    "blog",
			ItemID:    post.ID,
			Action:    string(audit.EventRevisionRestored),
			ActorID:   reviewer.ID,
			ActorName: reviewer.Name,
			Note:      "restored revision " + rev.ID.String(),
			RequestID: request.GetRequestID(ctx),
			Device:    reviewer.Device,
		}
		if err := s.audit.Emit(ctx, event); err != nil {
			s.logger.WarnContext(ctx, "failed to emit audit event", "error", err, "action", event.Action)
		}
	}
	return post, nil
}
