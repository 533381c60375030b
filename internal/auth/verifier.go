package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier checks a raw bearer token and returns the subject it identifies.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (uuid.UUID, error)
}

// OIDCVerifier validates JWTs against the signing keys published by an OIDC
// provider. Issuer and lifetime are validated; audience is not.
type OIDCVerifier struct {
	issuer string
	jwks   *keyfunc.JWKS
}

// NewOIDCVerifier resolves the provider's JWKS endpoint from its discovery
// document and starts a background key refresh that lives until ctx is done.
func NewOIDCVerifier(ctx context.Context, issuer string) (*OIDCVerifier, error) {
	jwksURL, err := discoverJWKSURL(ctx, issuer)
	if err != nil {
		return nil, err
	}
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			// Stale keys keep working until the next successful refresh.
		},
	})
	if err != nil {
		return nil, fmt.Errorf("load jwks from %s: %w", jwksURL, err)
	}
	return &OIDCVerifier{issuer: issuer, jwks: jwks}, nil
}

// Verify parses and validates the token, then extracts the subject claim as
// the user id.
func (v *OIDCVerifier) Verify(_ context.Context, rawToken string) (uuid.UUID, error) {
	token, err := jwt.Parse(rawToken, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, fmt.Errorf("token has no subject claim")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("subject claim is not a UUID: %w", err)
	}
	return id, nil
}

func discoverJWKSURL(ctx context.Context, issuer string) (string, error) {
	wellKnown := strings.TrimSuffix(issuer, "/") + "/.well-known/openid-configuration"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, wellKnown, nil)
	if err != nil {
		return "", fmt.Errorf("discovery request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch discovery document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("discovery document returned %d", resp.StatusCode)
	}
	var doc struct {
		JWKSURI string `json:"jwks_uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return "", fmt.Errorf("decode discovery document: %w", err)
	}
	if doc.JWKSURI == "" {
		return "", fmt.Errorf("discovery document has no jwks_uri")
	}
	return doc.JWKSURI, nil
}
