package resolver

import (
	"context"

	"bingo-service/internal/account"
	"bingo-service/internal/auth"
)

// Resolver turns a login attempt into exactly one persisted account.
// It is the ONLY place where identity-to-account mapping logic lives.
type Resolver interface {
	RegisterLocal(ctx context.Context, username, email, password string) (*account.Account, error)
	LoginLocal(ctx context.Context, usernameOrEmail, password string) (*account.Account, error)

	// ResolveExternal logs in (find-or-create) when current is nil, and
	// links the identity onto current otherwise.
	ResolveExternal(ctx context.Context, identity *auth.Identity, current *account.Account) (*account.Account, error)
}

// PasswordHasher is the credential verifier the resolver depends on.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password string, hash string) bool
}
