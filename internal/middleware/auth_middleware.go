package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursehub/backend/internal/app/models/dto"
	"github.com/coursehub/backend/internal/pkg/apperrors"
	"github.com/coursehub/backend/internal/pkg/auth"
	"github.com/coursehub/backend/internal/pkg/logger"
)

// identityKey is the context key the authenticated identity is stored under
const identityKey = "identity"

// AuthMiddleware attaches verified caller identities to requests
type AuthMiddleware struct {
	verifier auth.Verifier
}

// NewAuthMiddleware creates a new AuthMiddleware over the given verifier
func NewAuthMiddleware(verifier auth.Verifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth demands a well-formed bearer token that verifies and carries an
// email claim, responding 401 otherwise.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolveIdentity(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("Unauthorized"))
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// swallows every verification failure. Handlers behind it must treat a
// missing identity as an anonymous caller.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity, err := m.resolveIdentity(c); err == nil {
			c.Set(identityKey, identity)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolveIdentity(c *gin.Context) (*auth.Identity, error) {
	token, err := auth.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, err
	}

	identity, err := m.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		logger.Debug().Err(err).Str("path", c.FullPath()).Msg("Token verification failed")
		return nil, err
	}
	// Every authorization decision keys off the email claim.
	if identity.Email == "" {
		return nil, apperrors.ErrNoEmailClaim
	}
	return identity, nil
}

// IdentityFrom returns the authenticated identity attached to the request, or
// nil for anonymous callers.
func IdentityFrom(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}
