package twitch

import (
	"context"
	"errors"
	"fmt"

	"bingo-service/internal/auth"
	"bingo-service/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const issuer = "https://id.twitch.tv/oauth2"

// Twitch only puts preferred_username in the id_token when asked for it.
const idTokenClaims = `{"id_token":{"preferred_username":null}}`

type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("twitch oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to init twitch oidc provider: %w", err)
	}

	return newProvider(oidcProvider, clientID, clientSecret, redirectURL), nil
}

func newProvider(
	oidcProvider *oidc.Provider,
	clientID string,
	clientSecret string,
	redirectURL string,
) *Provider {
	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes: []string{
				oidc.ScopeOpenID,
				"user:read:email",
			},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{
			ClientID: clientID,
		}),
	}
}

// AuthCodeURL builds the authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("claims", idTokenClaims),
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("twitch token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("twitch did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("twitch id_token verification failed: %w", err)
	}

	var claims struct {
		Subject           string `json:"sub"`
		PreferredUsername string `json:"preferred_username"`
	}

	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("twitch id_token claims parse failed: %w", err)
	}

	if claims.Subject == "" {
		return nil, errors.New("twitch id_token missing sub")
	}

	logger.Info("twitch oidc verified", map[string]any{
		"issuer":               idToken.Issuer,
		"display_name_present": claims.PreferredUsername != "",
		"expiry_unix":          idToken.Expiry.Unix(),
	})

	return &auth.Identity{
		ExternalID:  claims.Subject,
		DisplayName: claims.PreferredUsername,
	}, nil
}
