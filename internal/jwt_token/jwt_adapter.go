package jwttoken

import (
	mwauth "github.com/ihostcast/ArtistsAid-sub001/pkg/platform/middleware/auth"
)

// MiddlewareAdapter adapts JWTService to the middleware's JWTValidator
// interface without the middleware importing this package's claims type.
type MiddlewareAdapter struct {
	svc *JWTService
}

func NewMiddlewareAdapter(svc *JWTService) *MiddlewareAdapter {
	return &MiddlewareAdapter{svc: svc}
}

func (a *MiddlewareAdapter) ValidateToken(tokenString string) (*mwauth.JWTClaims, error) {
	claims, err := a.svc.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return &mwauth.JWTClaims{
		UserID: claims.UserID,
		Name:   claims.Name,
		Role:   claims.Role,
	}, nil
}
