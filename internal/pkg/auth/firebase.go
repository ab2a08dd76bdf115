package auth

import (
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"fmt"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/coursehub/backend/internal/pkg/apperrors"
)

// DefaultCertsURL serves the identity provider's current token-signing
// certificates, keyed by key id.
const DefaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

var maxAgePattern = regexp.MustCompile(`max-age=(\d+)`)

type idTokenClaims struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	jwt.RegisteredClaims
}

// FirebaseVerifier verifies RS256 id-tokens against the identity provider's
// published x509 certificates. Certificates are cached until the max-age of
// the fetch response elapses.
type FirebaseVerifier struct {
	projectID string
	certsURL  string
	client    *resty.Client
	logger    zerolog.Logger

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	expiresAt time.Time
}

// NewFirebaseVerifier creates a strict verifier for the given identity
// provider project. certsURL may be empty to use DefaultCertsURL.
func NewFirebaseVerifier(projectID, certsURL string, lgr zerolog.Logger) (*FirebaseVerifier, error) {
	if projectID == "" {
		return nil, fmt.Errorf("identity provider project id is required for strict token verification")
	}
	if certsURL == "" {
		certsURL = DefaultCertsURL
	}
	client := resty.New().
		SetTimeout(5 * time.Second).
		SetRetryCount(2)

	return &FirebaseVerifier{
		projectID: projectID,
		certsURL:  certsURL,
		client:    client,
		logger:    lgr,
		keys:      map[string]*rsa.PublicKey{},
	}, nil
}

// Verify checks signature, expiry, issuer and audience of rawToken. Any
// failure maps to apperrors.ErrTokenInvalid.
func (v *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	claims := &idTokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token header carries no kid")
		}
		return v.keyFor(ctx, kid)
	},
		jwt.WithIssuer("https://securetoken.google.com/"+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	return &Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
	}, nil
}

// keyFor returns the public key for kid, refreshing the certificate cache
// when it has expired or the kid is unknown.
func (v *FirebaseVerifier) keyFor(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	fresh := time.Now().Before(v.expiresAt)
	v.mu.RUnlock()
	if ok && fresh {
		return key, nil
	}

	if err := v.refreshKeys(ctx); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()
	key, ok = v.keys[kid]
	if !ok {
		return nil, fmt.Errorf("no signing certificate for kid %q", kid)
	}
	return key, nil
}

func (v *FirebaseVerifier) refreshKeys(ctx context.Context) error {
	resp, err := v.client.R().SetContext(ctx).Get(v.certsURL)
	if err != nil {
		return fmt.Errorf("failed to fetch signing certificates: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("signing certificate fetch returned status %d", resp.StatusCode())
	}

	var certs map[string]string
	if err := json.Unmarshal(resp.Body(), &certs); err != nil {
		return fmt.Errorf("failed to decode signing certificates: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(certs))
	for kid, certPEM := range certs {
		key, err := parseCertPublicKey(certPEM)
		if err != nil {
			v.logger.Warn().Err(err).Str("kid", kid).Msg("Skipping unparseable signing certificate")
			continue
		}
		keys[kid] = key
	}
	if len(keys) == 0 {
		return fmt.Errorf("signing certificate response contained no usable keys")
	}

	v.mu.Lock()
	v.keys = keys
	v.expiresAt = time.Now().Add(certsMaxAge(resp.Header().Get("Cache-Control")))
	v.mu.Unlock()

	v.logger.Debug().Int("keys", len(keys)).Msg("Refreshed identity provider signing certificates")
	return nil
}

func parseCertPublicKey(certPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(certPEM))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in certificate")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}
	key, ok := cert.PublicKey.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("certificate does not carry an RSA public key")
	}
	return key, nil
}

// certsMaxAge extracts the max-age of a Cache-Control header, falling back
// to one hour when absent.
func certsMaxAge(cacheControl string) time.Duration {
	m := maxAgePattern.FindStringSubmatch(cacheControl)
	if len(m) == 2 {
		if secs, err := strconv.Atoi(m[1]); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Hour
}
