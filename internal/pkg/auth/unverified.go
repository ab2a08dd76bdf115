package auth

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/coursehub/backend/internal/pkg/apperrors"
)

// UnverifiedVerifier decodes tokens without checking signature, expiry or
// issuer. It exists for local development against front-ends that hold real
// provider tokens, and must never be selected in production mode; the
// bootstrap enforces that and logs loudly when this verifier is active.
type UnverifiedVerifier struct {
	logger zerolog.Logger
}

// NewUnverifiedVerifier creates the permissive development verifier.
func NewUnverifiedVerifier(lgr zerolog.Logger) *UnverifiedVerifier {
	lgr.Warn().Msg("Token verification is DISABLED: tokens are decoded without signature checks")
	return &UnverifiedVerifier{logger: lgr}
}

// Verify decodes the token payload as-is. Undecodable tokens map to
// apperrors.ErrTokenMalformed.
func (v *UnverifiedVerifier) Verify(_ context.Context, rawToken string) (*Identity, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenMalformed, err)
	}

	identity := &Identity{
		Email:   stringClaim(claims, "email"),
		Name:    stringClaim(claims, "name"),
		Picture: stringClaim(claims, "picture"),
		Subject: stringClaim(claims, "sub"),
	}
	v.logger.Debug().Str("email", identity.Email).Msg("Decoded token without verification")
	return identity, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
