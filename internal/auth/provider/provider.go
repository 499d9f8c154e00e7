package provider

import (
	"context"

	"bingo-service/internal/auth"
)

// OAuthProvider defines the contract of the external identity provider.
// Implementations return identity facts only and must not perform
// account creation, linking, or session management.
type OAuthProvider interface {
	// AuthCodeURL returns the OAuth authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode exchanges the authorization code for provider credentials
	// and returns a normalized identity. No auth decisions are made here.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}
