package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/internal/auth/device"
	"github.com/ihostcast/ArtistsAid-sub001/internal/blog"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	"github.com/ihostcast/ArtistsAid-sub001/internal/transport/http/shared"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
	request "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/request"
)

// Service defines the blog revision operations the handler needs.
type Service interface {
	GetPost(ctx context.Context, id uuid.UUID) (blog.Post, error)
	ListRevisions(ctx context.Context, postID uuid.UUID) ([]blog.Revision, error)
	Restore(ctx context.Context, postID, revisionID uuid.UUID, reviewer review.Reviewer) (blog.Post, error)
}

// Handler exposes revision history and restore on the admin surface.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

func New(svc Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/posts/{postID}/revisions", h.handleListRevisions)
	r.Post("/posts/{postID}/revisions/{revisionID}/restore", h.handleRestore)
}

func (h *Handler) handleListRevisions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid post id"))
		return
	}

	revisions, err := h.svc.ListRevisions(ctx, postID)
	if err != nil {
		h.logError(ctx, "revision listing failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, map[string]any{"revisions": revisions})
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid post id"))
		return
	}
	revisionID, err := uuid.Parse(chi.URLParam(r, "revisionID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid revision id"))
		return
	}

	reviewer := review.Reviewer{
		ID:     mwauth.GetUserID(ctx),
		Name:   mwauth.GetUserName(ctx),
		Device: device.ParseUserAgent(r.UserAgent()),
	}

	post, err := h.svc.Restore(ctx, postID, revisionID, reviewer)
	if err != nil {
		h.logError(ctx, "revision restore failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, post)
}

func (h *Handler) logError(ctx context.Context, msg string, err error) {
	logFn := h.logger.ErrorContext
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		logFn = h.logger.WarnContext
	}
	logFn(ctx, msg,
		"request_id", request.GetRequestID(ctx),
		"error", err.Error(),
	)
}
