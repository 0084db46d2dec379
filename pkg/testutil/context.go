package testutil

import (
	"context"
	"net/http"

	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
)

// WithUser adds an authenticated caller to the request context, simulating
// what the auth middleware would do after validating a token.
func WithUser(req *http.Request, userID, name, role string) *http.Request {
	ctx := req.Context()
	if userID != "" {
		ctx = context.WithValue(ctx, mwauth.ContextKeyUserID, userID)
	}
	if name != "" {
		ctx = context.WithValue(ctx, mwauth.ContextKeyUserName, name)
	}
	if role != "" {
		ctx = context.WithValue(ctx, mwauth.ContextKeyRole, role)
	}
	return req.WithContext(ctx)
}

// WithReviewer marks the request as coming from a reviewer account.
func WithReviewer(req *http.Request, userID, name string) *http.Request {
	return WithUser(req, userID, name, mwauth.RoleReviewer)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
