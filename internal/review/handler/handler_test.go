package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ihostcast/ArtistsAid-sub001/internal/review"
	"github.com/ihostcast/ArtistsAid-sub001/internal/review/handler/mocks"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	"github.com/ihostcast/ArtistsAid-sub001/pkg/testutil"
)

type commentPayload struct {
	PostID     string `json:"post_id"`
	AuthorName string `json:"author_name"`
	Body       string `json:"body"`
}

func newTestHandler(t *testing.T) (*mocks.MockService[commentPayload], chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService[commentPayload](ctrl)
	h := New[commentPayload]("comment", svc, review.CommentTransitions(), nil, nil)

	r := chi.NewRouter()
	h.RegisterPublic(r)
	h.RegisterAdmin(r)
	return svc, r
}

func TestHandleSubmit(t *testing.T) {
	svc, router := newTestHandler(t)

	t.Run("accepts a submission", func(t *testing.T) {
		payload := commentPayload{PostID: "p-1", AuthorName: "Ana", Body: "Lovely piece"}
		svc.EXPECT().
			Submit(gomock.Any(), payload, "user-1").
			Return(review.Item[commentPayload]{
				ID:          uuid.New(),
				Status:      review.StatusPending,
				Payload:     payload,
				SubmittedBy: "user-1",
			}, nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/submissions", payload)
		req = testutil.WithUser(req, "user-1", "Ana", "user")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		resp := testutil.UnmarshalResponse[itemResponse[commentPayload]](t, rr)
		assert.Equal(t, review.StatusPending, resp.Status)
		assert.ElementsMatch(t,
			[]review.Decision{review.DecisionApprove, review.DecisionReject, review.DecisionMarkSpam},
			resp.AllowedDecisions,
		)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		req := testutil.NewRequestWithBody(t, http.MethodPost, "/comment/submissions", "{not json")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	t.Run("maps validation failures", func(t *testing.T) {
		svc.EXPECT().
			Submit(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(review.Item[commentPayload]{}, dErrors.New(dErrors.CodeInvalidInput, "body is required"))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/submissions", commentPayload{})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})
}

func TestHandleQueue(t *testing.T) {
	svc, router := newTestHandler(t)

	t.Run("passes the status filter through", func(t *testing.T) {
		items := []review.Item[commentPayload]{
			{ID: uuid.New(), Status: review.StatusPending},
			{ID: uuid.New(), Status: review.StatusPending},
		}
		svc.EXPECT().
			List(gomock.Any(), review.StatusPending).
			Return(items, nil)

		req := testutil.NewRequest(t, http.MethodGet, "/comment/queue?status=pending")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[queueResponse[commentPayload]](t, rr)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, items[0].ID, resp.Items[0].ID)
	})

	t.Run("empty queue serializes as an empty list", func(t *testing.T) {
		svc.EXPECT().
			List(gomock.Any(), review.StatusAll).
			Return(nil, nil)

		req := testutil.NewRequest(t, http.MethodGet, "/comment/queue")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.JSONEq(t, `{"items":[]}`, string(testutil.ReadBody(t, rr)))
	})

	t.Run("unknown status filter is a bad request", func(t *testing.T) {
		svc.EXPECT().
			List(gomock.Any(), review.Status("bogus")).
			Return(nil, dErrors.New(dErrors.CodeBadRequest, "unknown status filter: bogus"))

		req := testutil.NewRequest(t, http.MethodGet, "/comment/queue?status=bogus")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func TestHandleDecision(t *testing.T) {
	svc, router := newTestHandler(t)
	itemID := uuid.New()

	t.Run("applies the reviewer's decision", func(t *testing.T) {
		svc.EXPECT().
			Apply(gomock.Any(),
				review.Action{ItemID: itemID, Decision: review.DecisionApprove, Note: "fine"},
				gomock.Cond(func(rev review.Reviewer) bool {
					return rev.ID == "rev-1" && rev.Name == "Dana"
				}),
			).
			Return(review.Item[commentPayload]{ID: itemID, Status: review.StatusApproved}, nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/items/"+itemID.String()+"/decision",
			map[string]any{"decision": "approve", "note": "fine"})
		req = testutil.WithReviewer(req, "rev-1", "Dana")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[itemResponse[commentPayload]](t, rr)
		assert.Equal(t, review.StatusApproved, resp.Status)
		assert.Empty(t, resp.AllowedDecisions, "approved comments are terminal")
	})

	t.Run("rejects a non-uuid item id", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/items/not-a-uuid/decision",
			map[string]any{"decision": "approve"})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})

	t.Run("rejects a missing decision", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/items/"+itemID.String()+"/decision",
			map[string]any{"note": "no decision"})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	t.Run("rejects a negative amount before reaching the service", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/items/"+itemID.String()+"/decision",
			map[string]any{"decision": "assign_funds", "amount_cents": -100})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	t.Run("maps an illegal transition to a conflict", func(t *testing.T) {
		svc.EXPECT().
			Apply(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(review.Item[commentPayload]{}, dErrors.New(dErrors.CodeConflict, "cannot approve an item in status rejected"))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/comment/items/"+itemID.String()+"/decision",
			map[string]any{"decision": "approve"})
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusConflict, string(dErrors.CodeConflict))
	})
}

func TestHandleQueue_Enrichment(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService[commentPayload](ctrl)
	enrich := func(_ context.Context, item review.Item[commentPayload]) (map[string]any, error) {
		return map[string]any{"preview_url": "https://example.test/" + item.ID.String()}, nil
	}
	h := New[commentPayload]("comment", svc, review.CommentTransitions(), enrich, nil)
	r := chi.NewRouter()
	h.RegisterAdmin(r)

	item := review.Item[commentPayload]{ID: uuid.New(), Status: review.StatusPending}
	svc.EXPECT().List(gomock.Any(), review.StatusAll).Return([]review.Item[commentPayload]{item}, nil)

	req := testutil.NewRequest(t, http.MethodGet, "/comment/queue")
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[queueResponse[commentPayload]](t, rr)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "https://example.test/"+item.ID.String(), resp.Items[0].Extra["preview_url"])
}
