package resolver

import (
	"context"
	"errors"
	"fmt"

	"bingo-service/internal/account"
	"bingo-service/internal/apperr"
	"bingo-service/internal/auth"
	"bingo-service/internal/auth/credentials"
	"bingo-service/internal/logger"
)

// StoreResolver resolves identities against an account.Store.
type StoreResolver struct {
	accounts account.Store
	hasher   PasswordHasher
}

func NewStoreResolver(accounts account.Store, hasher PasswordHasher) *StoreResolver {
	return &StoreResolver{accounts: accounts, hasher: hasher}
}

func (r *StoreResolver) RegisterLocal(
	ctx context.Context,
	username string,
	email string,
	password string,
) (*account.Account, error) {

	if username == "" || email == "" || password == "" {
		return nil, apperr.Validation("username, email and password are required")
	}

	hash, err := r.hasher.Hash(ctx, password)
	if errors.Is(err, credentials.ErrPasswordTooLong) {
		return nil, apperr.Validation("password too long")
	}
	if err != nil {
		return nil, err
	}

	acc, err := r.accounts.InsertLocal(ctx, username, email, hash)
	if errors.Is(err, account.ErrConflict) {
		return nil, apperr.Validation("username or email taken")
	}
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	logger.Info("local account registered", map[string]any{
		"user_id": acc.ID,
	})
	return acc, nil
}

func (r *StoreResolver) LoginLocal(
	ctx context.Context,
	usernameOrEmail string,
	password string,
) (*account.Account, error) {

	acc, err := r.accounts.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if errors.Is(err, account.ErrNotFound) {
		return nil, apperr.Auth("not found")
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !acc.HasPassword() {
		return nil, apperr.Auth("no local credential")
	}

	if !r.hasher.Verify(ctx, password, acc.PasswordHash) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, apperr.Auth("bad credential")
	}

	return acc, nil
}

func (r *StoreResolver) ResolveExternal(
	ctx context.Context,
	identity *auth.Identity,
	current *account.Account,
) (*account.Account, error) {

	if identity == nil || identity.ExternalID == "" {
		return nil, apperr.Validation("external identity is missing")
	}

	if current != nil {
		return r.link(ctx, identity, current)
	}

	// 1. Known external id: login as is, display name is not refreshed
	acc, err := r.accounts.FindByExternalID(ctx, identity.ExternalID)
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, account.ErrNotFound) {
		return nil, fmt.Errorf("resolve external: %w", err)
	}

	// 2. Unseen: create. A concurrent login may win the insert; the unique
	// constraint decides and the loser adopts the winner's row.
	acc, err = r.accounts.InsertExternal(ctx, identity.ExternalID, identity.DisplayName)
	if err == nil {
		logger.Info("external account created", map[string]any{
			"user_id": acc.ID,
		})
		return acc, nil
	}
	if !errors.Is(err, account.ErrConflict) {
		return nil, fmt.Errorf("resolve external: %w", err)
	}

	acc, err = r.accounts.FindByExternalID(ctx, identity.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("resolve external: refetch after conflict: %w", err)
	}
	return acc, nil
}

func (r *StoreResolver) link(
	ctx context.Context,
	identity *auth.Identity,
	current *account.Account,
) (*account.Account, error) {

	acc, err := r.accounts.BindExternalID(ctx, current.ID, identity.ExternalID, identity.DisplayName)
	switch {
	case err == nil:
		logger.Info("external identity linked", map[string]any{
			"user_id": acc.ID,
		})
		return acc, nil
	case errors.Is(err, account.ErrConflict):
		logger.Warn("external identity owned by another account", map[string]any{
			"user_id": current.ID,
		})
		return nil, apperr.ErrLinkConflict
	case errors.Is(err, account.ErrNotFound):
		return nil, apperr.Auth("account not found")
	default:
		return nil, fmt.Errorf("link external: %w", err)
	}
}
