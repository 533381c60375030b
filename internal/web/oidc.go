package web

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/thechaoticengineer/CloudScribe/internal/config"
)

// Authenticator runs the OIDC authorization-code flow against the identity
// provider and hands out refreshing token sources for API calls.
type Authenticator struct {
	provider *oidc.Provider
	verifier *oidc.IDTokenVerifier
	oauth    oauth2.Config
}

func NewAuthenticator(ctx context.Context, cfg config.OIDCConfig) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &Authenticator{
		provider: provider,
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
		oauth: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", oidc.ScopeOfflineAccess},
		},
	}, nil
}

// AuthCodeURL builds the provider login URL for the given anti-CSRF state.
func (a *Authenticator) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// Exchange trades the authorization code for a token set and returns it
// together with the verified subject from the id token.
func (a *Authenticator) Exchange(ctx context.Context, code string) (*oauth2.Token, string, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, "", fmt.Errorf("code exchange: %w", err)
	}
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, "", fmt.Errorf("token response has no id_token")
	}
	idToken, err := a.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, "", fmt.Errorf("verify id token: %w", err)
	}
	return token, idToken.Subject, nil
}

// TokenSource wraps a stored token so expired access tokens refresh
// transparently via the refresh token.
func (a *Authenticator) TokenSource(ctx context.Context, t *oauth2.Token) oauth2.TokenSource {
	return a.oauth.TokenSource(ctx, t)
}
