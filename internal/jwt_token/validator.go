package jwttoken

import (
	authmw "preservation/pkg/platform/middleware/auth"
)

// Validator exposes the service to the auth middleware, which only needs the
// acting person and the token ID.
func (s *JWTService) Validator() authmw.JWTValidator {
	return middlewareValidator{service: s}
}

type middlewareValidator struct {
	service *JWTService
}

func (v middlewareValidator) ValidateToken(raw string) (*authmw.JWTClaims, error) {
	claims, err := v.service.ValidateToken(raw)
	if err != nil {
		return nil, err
	}
	return &authmw.JWTClaims{PersonID: claims.PersonID, JTI: claims.ID}, nil
}
