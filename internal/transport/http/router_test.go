package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihostcast/ArtistsAid-sub001/internal/audit"
	"github.com/ihostcast/ArtistsAid-sub001/internal/blog"
	bloghandler "github.com/ihostcast/ArtistsAid-sub001/internal/blog/handler"
	"github.com/ihostcast/ArtistsAid-sub001/internal/cause"
	"github.com/ihostcast/ArtistsAid-sub001/internal/comment"
	jwttoken "github.com/ihostcast/ArtistsAid-sub001/internal/jwt_token"
	"github.com/ihostcast/ArtistsAid-sub001/internal/payments"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	reviewhandler "github.com/ihostcast/ArtistsAid-sub001/internal/review/handler"
	"github.com/ihostcast/ArtistsAid-sub001/internal/verification"
	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
	"github.com/ihostcast/ArtistsAid-sub001/pkg/testutil"
)

const adminToken = "test-admin-token"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type routerFixture struct {
	router http.Handler
	jwt    *jwttoken.JWTService
	trail  *audit.InMemoryStore
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	jwtSvc := jwttoken.NewJWTService("test-key", "artistsaid", "artistsaid-api")
	trail := audit.NewInMemoryStore()

	verificationSvc := review.NewService(
		verification.Domain,
		review.NewInMemoryStore[verification.Payload](),
		verification.Transitions(),
		review.Deps{},
	)
	causeSvc := cause.NewService(
		review.NewService(cause.Domain, review.NewInMemoryStore[cause.Payload](), cause.Transitions(), review.Deps{}),
		payments.NoopProvider{},
		nil,
	)
	commentSvc := review.NewService(
		comment.Domain,
		review.NewInMemoryStore[comment.Payload](),
		comment.Transitions(),
		review.Deps{},
	)
	blogSvc := blog.NewService(blog.NewInMemoryStore(), nil, nil)

	router := NewRouter(Handlers{
		Verification: reviewhandler.New(verification.Domain, verificationSvc, verification.Transitions(), nil, nil),
		Cause:        reviewhandler.New[cause.Payload](cause.Domain, causeSvc, cause.Transitions(), nil, nil),
		Comment:      reviewhandler.New[comment.Payload](comment.Domain, commentSvc, comment.Transitions(), nil, nil),
		Blog:         bloghandler.New(blogSvc, nil),
	}, Config{
		Validator:  jwttoken.NewMiddlewareAdapter(jwtSvc),
		AdminToken: adminToken,
		Logger:     testLogger(),
		AuditTrail: trail,
	})

	return &routerFixture{router: router, jwt: jwtSvc, trail: trail}
}

func (f *routerFixture) token(t *testing.T, role string) string {
	t.Helper()
	token, err := f.jwt.GenerateAccessToken(uuid.New(), "Dana", role, time.Hour)
	require.NoError(t, err)
	return token
}

func TestRouter_Health(t *testing.T) {
	f := newRouterFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertJSONContains(t, rr, "status", "ok")
}

func TestRouter_HealthDegraded(t *testing.T) {
	f := newRouterFixture(t)
	router := NewRouter(Handlers{
		Verification: reviewhandler.New[verification.Payload](verification.Domain, nil, verification.Transitions(), nil, nil),
		Cause:        reviewhandler.New[cause.Payload](cause.Domain, nil, cause.Transitions(), nil, nil),
		Comment:      reviewhandler.New[comment.Payload](comment.Domain, nil, comment.Transitions(), nil, nil),
		Blog:         bloghandler.New(nil, nil),
	}, Config{
		Validator: jwttoken.NewMiddlewareAdapter(f.jwt),
		Logger:    testLogger(),
		Health: func(context.Context) error {
			return errors.New("postgres unreachable")
		},
	})

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	testutil.AssertJSONContains(t, rr, "status", "degraded")
}

func TestRouter_SubmissionRequiresAuth(t *testing.T) {
	f := newRouterFixture(t)
	body := map[string]any{"post_id": "p-1", "author_name": "Ana", "body": "Nice"}

	t.Run("anonymous is rejected", func(t *testing.T) {
		rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodPost, "/v1/comment/submissions", body))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("any authenticated user may submit", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/comment/submissions", body)
		req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleUser))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusCreated)
	})
}

func TestRouter_AdminSurfaceRequiresRole(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("plain users cannot see the queue", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/admin/comment/queue")
		req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleUser))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("reviewers can", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/admin/comment/queue?status=pending")
		req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleReviewer))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("every review domain is mounted", func(t *testing.T) {
		for _, domain := range []string{"verification", "cause", "comment"} {
			req := testutil.NewRequest(t, http.MethodGet, "/v1/admin/"+domain+"/queue")
			req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleReviewer))
			rr := testutil.DoRequest(f.router, req)
			testutil.AssertStatus(t, rr, http.StatusOK)
		}
	})
}

func TestRouter_AuditTrailNeedsOperatorToken(t *testing.T) {
	f := newRouterFixture(t)
	require.NoError(t, f.trail.Append(context.Background(), audit.Event{
		Action: string(audit.EventItemApproved),
	}))

	t.Run("reviewer token alone is not enough", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/admin/audit/events")
		req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleAdmin))
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("operator token unlocks the trail", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/admin/audit/events")
		req.Header.Set("Authorization", "Bearer "+f.token(t, mwauth.RoleAdmin))
		req.Header.Set("X-Admin-Token", adminToken)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[struct {
			Events []audit.Event `json:"events"`
		}](t, rr)
		require.Len(t, resp.Events, 1)
		assert.Equal(t, string(audit.EventItemApproved), resp.Events[0].Action)
	})
}
