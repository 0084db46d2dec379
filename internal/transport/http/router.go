package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ihostcast/ArtistsAid-sub001/internal/audit"
	bloghandler "github.com/ihostcast/ArtistsAid-sub001/internal/blog/handler"
	"github.com/ihostcast/ArtistsAid-sub001/internal/cause"
	"github.com/ihostcast/ArtistsAid-sub001/internal/comment"
	platformmetrics "github.com/ihostcast/ArtistsAid-sub001/internal/platform/metrics"
	reviewhandler "github.com/ihostcast/ArtistsAid-sub001/internal/review/handler"
	"github.com/ihostcast/ArtistsAid-sub001/internal/transport/http/shared"
	"github.com/ihostcast/ArtistsAid-sub001/internal/verification"
	mwadmin "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/admin"
	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
	request "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/request"
)

// Handlers bundles the feature handlers the router mounts.
type Handlers struct {
	Verification *reviewhandler.Handler[verification.Payload]
	Cause        *reviewhandler.Handler[cause.Payload]
	Comment      *reviewhandler.Handler[comment.Payload]
	Blog         *bloghandler.Handler
}

// Config carries the router's cross-cutting collaborators.
type Config struct {
	Validator  mwauth.JWTValidator
	AdminToken string
	Logger     *slog.Logger
	Metrics    *platformmetrics.Metrics
	AuditTrail audit.Store
	Health     func(ctx context.Context) error
}

// NewRouter wires all endpoints. Submissions only need authentication; the
// admin surface additionally needs the reviewer or admin role, and the audit
// trail needs the operator token on top.
func NewRouter(h Handlers, cfg Config) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	if cfg.Metrics != nil {
		r.Use(platformmetrics.LatencyMiddleware(cfg.Metrics))
	}

	r.Get("/healthz", handleHealth(cfg))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mwauth.RequireAuth(cfg.Validator, cfg.Logger))
			h.Verification.RegisterPublic(r)
			h.Cause.RegisterPublic(r)
			h.Comment.RegisterPublic(r)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(mwauth.RequireAuth(cfg.Validator, cfg.Logger))
			r.Use(mwauth.RequireRole(cfg.Logger, mwauth.RoleReviewer, mwauth.RoleAdmin))

			h.Verification.RegisterAdmin(r)
			h.Cause.RegisterAdmin(r)
			h.Comment.RegisterAdmin(r)
			h.Blog.RegisterAdmin(r)

			r.Group(func(r chi.Router) {
				r.Use(mwadmin.RequireAdminToken(cfg.AdminToken, cfg.Logger))
				r.Get("/audit/events", handleAuditTrail(cfg))
			})
		})
	})
	return r
}

func handleHealth(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Health != nil {
			if err := cfg.Health(r.Context()); err != nil {
				shared.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
				return
			}
		}
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleAuditTrail(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}
		events, err := cfg.AuditTrail.ListRecent(r.Context(), limit)
		if err != nil {
			cfg.Logger.ErrorContext(r.Context(), "audit trail fetch failed",
				"request_id", request.GetRequestID(r.Context()),
				"error", err.Error(),
			)
			shared.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal_error"})
			return
		}
		shared.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
	}
}
