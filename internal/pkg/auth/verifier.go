package auth

import (
	"context"
	"strings"

	"github.com/coursehub/backend/internal/pkg/apperrors"
)

// Identity is the authenticated caller's claim set. Callers key everything
// off Email; the other fields are used to pre-fill instructor profiles.
type Identity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier validates a raw bearer token and extracts the caller's identity.
// A missing email claim is not the verifier's concern; the auth middleware
// rejects email-less identities.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// ExtractBearerToken pulls the token out of an Authorization header value.
// Only the "Bearer <token>" form is accepted.
func ExtractBearerToken(authHeader string) (string, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", apperrors.ErrTokenNotFound
	}
	token := strings.TrimPrefix(authHeader, prefix)
	if token == "" {
		return "", apperrors.ErrTokenNotFound
	}
	return token, nil
}
