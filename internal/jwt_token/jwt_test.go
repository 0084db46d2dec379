package jwttoken

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/ihostcast/ArtistsAid-sub001/pkg/domain-errors"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-signing-key", "artistsaid", "artistsaid-api")
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "Dana", "reviewer", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Dana", claims.Name)
	assert.Equal(t, "reviewer", claims.Role)
	assert.Equal(t, "artistsaid", claims.Issuer)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	svc := NewJWTService("test-signing-key", "artistsaid", "artistsaid-api")

	t.Run("expired token", func(t *testing.T) {
		token, err := svc.GenerateAccessToken(uuid.New(), "Dana", "reviewer", -time.Minute)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := NewJWTService("another-key", "artistsaid", "artistsaid-api")
		token, err := other.GenerateAccessToken(uuid.New(), "Dana", "reviewer", time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})
}

func TestMiddlewareAdapter(t *testing.T) {
	svc := NewJWTService("test-signing-key", "artistsaid", "artistsaid-api")
	adapter := NewMiddlewareAdapter(svc)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "Dana", "admin", time.Hour)
	require.NoError(t, err)

	claims, err := adapter.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "Dana", claims.Name)
	assert.Equal(t, "admin", claims.Role)
}
