package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bingo-service/internal/account"
)

// AccountFinder is the slice of account.Store the binder needs.
type AccountFinder interface {
	FindByID(ctx context.Context, id string) (*account.Account, error)
}

// Binder associates sessions with accounts. A session is either bound to
// an existing account or anonymous; there is no third state.
type Binder struct {
	store    Store
	accounts AccountFinder
	ttl      time.Duration
	now      func() time.Time
}

func NewBinder(store Store, accounts AccountFinder, ttl time.Duration) *Binder {
	return &Binder{
		store:    store,
		accounts: accounts,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Bind creates a fresh session for acc. Callers drop any previous session
// id so a pre-login id is never promoted.
func (b *Binder) Bind(ctx context.Context, acc *account.Account) (Session, error) {
	if acc == nil || acc.ID == "" {
		return Session{}, errors.New("session: bind needs an account")
	}

	id, err := GenerateID()
	if err != nil {
		return Session{}, err
	}

	now := b.now()
	s := Session{
		SessionID: id,
		UserID:    acc.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	if err := b.store.Create(ctx, s); err != nil {
		return Session{}, fmt.Errorf("session: persist: %w", err)
	}
	return s, nil
}

// Resolve returns the account bound to sessionID, or nil when the session
// is anonymous, expired, or points at an account that no longer exists.
func (b *Binder) Resolve(ctx context.Context, sessionID string) (*account.Account, error) {
	if sessionID == "" {
		return nil, nil
	}

	s, err := b.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if s == nil {
		return nil, nil
	}

	if s.Expired(b.now()) {
		return nil, b.store.Delete(ctx, sessionID)
	}

	acc, err := b.accounts.FindByID(ctx, s.UserID)
	if errors.Is(err, account.ErrNotFound) {
		return nil, b.store.Delete(ctx, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("session: load account: %w", err)
	}
	return acc, nil
}

// Unbind drops the session. Unknown ids are not an error.
func (b *Binder) Unbind(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return b.store.Delete(ctx, sessionID)
}
