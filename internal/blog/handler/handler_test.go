package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ihostcast/ArtistsAid-sub001/internal/blog"
	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
	"github.com/ihostcast/ArtistsAid-sub001/pkg/testutil"
)

func newTestRouter(t *testing.T) (*blog.InMemoryStore, chi.Router) {
	t.Helper()
	store := blog.NewInMemoryStore()
	h := New(blog.NewService(store, nil, nil), nil)
	r := chi.NewRouter()
	h.RegisterAdmin(r)
	return store, r
}

func seedPost(t *testing.T, store *blog.InMemoryStore) (blog.Post, blog.Revision) {
	t.Helper()
	ctx := context.Background()
	post := blog.Post{
		ID:        uuid.New(),
		Title:     "Open call results",
		Content:   "Winners announced.",
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, store.InsertPost(ctx, post))

	rev := blog.Revision{
		ID:        uuid.New(),
		PostID:    post.ID,
		Title:     "Open call results (draft)",
		Content:   "Winners to be announced.",
		CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, store.InsertRevision(ctx, rev))
	return post, rev
}

func TestHandleListRevisions(t *testing.T) {
	store, router := newTestRouter(t)
	post, rev := seedPost(t, store)

	t.Run("lists the post's history", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/posts/"+post.ID.String()+"/revisions")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		resp := testutil.UnmarshalResponse[struct {
			Revisions []blog.Revision `json:"revisions"`
		}](t, rr)
		require.Len(t, resp.Revisions, 1)
		assert.Equal(t, rev.ID, resp.Revisions[0].ID)
	})

	t.Run("unknown post is not found", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/posts/"+uuid.NewString()+"/revisions")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	})

	t.Run("malformed post id is a bad request", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/posts/not-a-uuid/revisions")
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}

func TestHandleRestore(t *testing.T) {
	store, router := newTestRouter(t)
	post, rev := seedPost(t, store)

	req := testutil.NewJSONRequest(t, http.MethodPost,
		"/posts/"+post.ID.String()+"/revisions/"+rev.ID.String()+"/restore", nil)
	req = testutil.WithReviewer(req, "rev-1", "Dana")
	rr := testutil.DoRequest(router, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	restored := testutil.UnmarshalResponse[blog.Post](t, rr)
	assert.Equal(t, rev.Title, restored.Title)
	assert.Equal(t, rev.Content, restored.Content)

	t.Run("history grew by the pre-restore snapshot", func(t *testing.T) {
		revisions, err := store.ListRevisions(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Len(t, revisions, 2)
	})

	t.Run("restoring a foreign revision fails", func(t *testing.T) {
		other, otherRev := seedPost(t, store)
		_ = other

		req := testutil.NewJSONRequest(t, http.MethodPost,
			"/posts/"+post.ID.String()+"/revisions/"+otherRev.ID.String()+"/restore", nil)
		rr := testutil.DoRequest(router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
	})
}
