package account

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrConflict means a unique column (username, email, external_id)
	// already holds the value on another row.
	ErrConflict = errors.New("account: unique constraint conflict")
	ErrNotFound = errors.New("account: not found")
)

// Account is the canonical persisted identity. Empty strings mean the
// column is NULL.
type Account struct {
	ID                  string
	Username            string
	Email               string
	PasswordHash        string
	ExternalID          string
	ExternalDisplayName string
	CreatedAt           time.Time
}

// HasPassword reports whether the account supports local login.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// Linked reports whether an external identity is bound.
func (a *Account) Linked() bool {
	return a.ExternalID != ""
}

// Store persists accounts. Every mutating call is a single statement, so
// uniqueness is enforced by the database and surfaces as ErrConflict.
type Store interface {
	FindByID(ctx context.Context, id string) (*Account, error)

	// FindByUsernameOrEmail matches key exactly against username or email.
	// A username match wins over an email match on a different row.
	FindByUsernameOrEmail(ctx context.Context, key string) (*Account, error)

	FindByExternalID(ctx context.Context, externalID string) (*Account, error)

	InsertLocal(ctx context.Context, username, email, passwordHash string) (*Account, error)
	InsertExternal(ctx context.Context, externalID, displayName string) (*Account, error)

	// BindExternalID sets externalID on accountID. Rebinding the same pair
	// is a no-op success; an externalID owned by another row is ErrConflict.
	// An empty displayName keeps the stored one.
	BindExternalID(ctx context.Context, accountID, externalID, displayName string) (*Account, error)
}
