package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ihostcast/ArtistsAid-sub001/internal/auth/device"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	"github.com/ihostcast/ArtistsAid-sub001/internal/transport/http/shared"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
	request "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/request"
)

// Service defines the review operations the handler needs.
//
//go:generate mockgen -source=handler.go -destination=mocks/service.go -package=mocks Service
type Service[P any] interface {
	Submit(ctx context.Context, payload P, submittedBy string) (review.Item[P], error)
	List(ctx context.Context, status review.Status) ([]review.Item[P], error)
	Apply(ctx context.Context, action review.Action, reviewer review.Reviewer) (review.Item[P], error)
}

// Enricher adds response-only fields to a queue entry, such as presigned
// document URLs. A nil Enricher means entries go out as stored.
type Enricher[P any] func(ctx context.Context, item review.Item[P]) (map[string]any, error)

// Handler is the thin HTTP layer for one workflow domain. It delegates to the
// domain service without embedding business logic so transport concerns
// remain isolated.
type Handler[P any] struct {
	domain      string
	svc         Service[P]
	transitions review.Transitions
	enrich      Enricher[P]
	logger      *slog.Logger
}

func New[P any](domain string, svc Service[P], transitions review.Transitions, enrich Enricher[P], logger *slog.Logger) *Handler[P] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler[P]{
		domain:      domain,
		svc:         svc,
		transitions: transitions,
		enrich:      enrich,
		logger:      logger,
	}
}

// RegisterPublic mounts the end-user submission route.
func (h *Handler[P]) RegisterPublic(r chi.Router) {
	r.Post("/"+h.domain+"/submissions", h.handleSubmit)
}

// RegisterAdmin mounts the reviewer queue and decision routes. The caller is
// responsible for wrapping the router in auth and role middleware.
func (h *Handler[P]) RegisterAdmin(r chi.Router) {
	r.Get("/"+h.domain+"/queue", h.handleQueue)
	r.Post("/"+h.domain+"/items/{itemID}/decision", h.handleDecision)
}

func (h *Handler[P]) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var payload P
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.logger.WarnContext(ctx, "invalid submission body",
			"domain", h.domain,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	item, err := h.svc.Submit(ctx, payload, mwauth.GetUserID(ctx))
	if err != nil {
		h.logError(ctx, "submission failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, h.respond(ctx, item))
}

func (h *Handler[P]) handleQueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := review.Status(r.URL.Query().Get("status"))

	items, err := h.svc.List(ctx, status)
	if err != nil {
		h.logError(ctx, "queue fetch failed", err)
		shared.WriteError(w, err)
		return
	}

	resp := queueResponse[P]{Items: make([]itemResponse[P], 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, h.respond(ctx, item))
	}
	shared.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler[P]) handleDecision(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid item id"))
		return
	}

	var req decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid decision body",
			"domain", h.domain,
			"request_id", request.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if errs := req.validate(); len(errs) > 0 {
		for field, msg := range errs {
			shared.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, field+": "+msg))
			return
		}
	}

	reviewer := review.Reviewer{
		ID:     mwauth.GetUserID(ctx),
		Name:   mwauth.GetUserName(ctx),
		Device: device.ParseUserAgent(r.UserAgent()),
	}
	action := review.Action{
		ItemID:      itemID,
		Decision:    review.Decision(req.Decision),
		Note:        req.Note,
		AmountCents: req.AmountCents,
	}

	item, err := h.svc.Apply(ctx, action, reviewer)
	if err != nil {
		h.logError(ctx, "decision failed", err)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, h.respond(ctx, item))
}

func (h *Handler[P]) respond(ctx context.Context, item review.Item[P]) itemResponse[P] {
	resp := itemResponse[P]{
		Item:             item,
		AllowedDecisions: h.transitions.Allowed(item.Status),
	}
	if h.enrich != nil {
		extra, err := h.enrich(ctx, item)
		if err != nil {
			// Enrichment is presentation-only; log and serve the bare item.
			h.logger.WarnContext(ctx, "failed to enrich queue entry",
				"domain", h.domain,
				"item_id", item.ID,
				"error", err.Error(),
			)
		} else {
			resp.Extra = extra
		}
	}
	return resp
}

func (h *Handler[P]) logError(ctx context.Context, msg string, err error) {
	logFn := h.logger.ErrorContext
	if dErrors.CodeOf(err) != dErrors.CodeInternal {
		logFn = h.logger.WarnContext
	}
	logFn(ctx, msg,
		"domain", h.domain,
		"request_id", request.GetRequestID(ctx),
		"error", err.Error(),
	)
}
