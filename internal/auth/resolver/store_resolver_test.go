package resolver_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bingo-service/internal/account"
	"bingo-service/internal/apperr"
	"bingo-service/internal/auth"
	"bingo-service/internal/auth/credentials"
	"bingo-service/internal/auth/resolver"
	"bingo-service/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newResolver(t *testing.T) (*resolver.StoreResolver, *account.SQLStore) {
	t.Helper()
	store := account.NewSQLStore(dbtest.Open(t))
	return resolver.NewStoreResolver(store, credentials.NewHasherWithCost(4, bcrypt.MinCost)), store
}

func TestRegisterAndLoginScenario(t *testing.T) {
	ctx := context.Background()
	r, _ := newResolver(t)

	alice, err := r.RegisterLocal(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", alice.PasswordHash)

	_, err = r.RegisterLocal(ctx, "alice", "b@x.com", "pw2")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "username or email taken", err.Error())

	got, err := r.LoginLocal(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	got, err = r.LoginLocal(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = r.LoginLocal(ctx, "alice", "wrong")
	assert.True(t, apperr.IsAuth(err))
}

func TestRegisterRequiresAllFields(t *testing.T) {
	r, _ := newResolver(t)

	cases := []struct{ username, email, password string }{
		{"", "a@x.com", "pw1"},
		{"alice", "", "pw1"},
		{"alice", "a@x.com", ""},
	}
	for _, tc := range cases {
		_, err := r.RegisterLocal(context.Background(), tc.username, tc.email, tc.password)
		assert.True(t, apperr.IsValidation(err), "%+v", tc)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	r, _ := newResolver(t)

	_, err := r.RegisterLocal(ctx, "alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, unknown := r.LoginLocal(ctx, "nobody", "pw1")
	_, wrong := r.LoginLocal(ctx, "alice", "nope")

	for _, err := range []error{unknown, wrong} {
		require.True(t, apperr.IsAuth(err))
		assert.Equal(t, "invalid credentials", err.Error())
	}

	var authErr *apperr.AuthError
	require.ErrorAs(t, unknown, &authErr)
	assert.Equal(t, "not found", authErr.Reason)
	require.ErrorAs(t, wrong, &authErr)
	assert.Equal(t, "bad credential", authErr.Reason)
}

func TestResolveExternalFindOrCreate(t *testing.T) {
	ctx := context.Background()
	r, store := newResolver(t)
	id := &auth.Identity{ExternalID: "tw-42", DisplayName: "AliceTV"}

	first, err := r.ResolveExternal(ctx, id, nil)
	require.NoError(t, err)
	assert.Equal(t, "tw-42", first.ExternalID)
	assert.Equal(t, "AliceTV", first.ExternalDisplayName)

	second, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-42", DisplayName: "Renamed"}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "AliceTV", second.ExternalDisplayName)

	owner, err := store.FindByExternalID(ctx, "tw-42")
	require.NoError(t, err)
	assert.Equal(t, first.ID, owner.ID)
}

func TestResolveExternalConcurrentLoginCreatesOneAccount(t *testing.T) {
	ctx := context.Background()
	r, _ := newResolver(t)

	const n = 8
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			acc, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-race", DisplayName: "Racer"}, nil)
			if assert.NoError(t, err) {
				ids[i] = acc.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestLinkOntoCurrentAccount(t *testing.T) {
	ctx := context.Background()
	r, _ := newResolver(t)

	bob, err := r.RegisterLocal(ctx, "bob", "b@x.com", "pw")
	require.NoError(t, err)

	linked, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-9", DisplayName: "BobTV"}, bob)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, linked.ID)
	assert.Equal(t, "tw-9", linked.ExternalID)

	again, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-9"}, linked)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, again.ID)

	viaProvider, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-9"}, nil)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, viaProvider.ID)
}

func TestLinkDoesNotTransferIdentity(t *testing.T) {
	ctx := context.Background()
	r, store := newResolver(t)

	alice, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-42", DisplayName: "AliceTV"}, nil)
	require.NoError(t, err)
	bob, err := r.RegisterLocal(ctx, "bob", "b@x.com", "pw")
	require.NoError(t, err)

	_, err = r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-42", DisplayName: "AliceTV"}, bob)
	assert.ErrorIs(t, err, apperr.ErrLinkConflict)

	owner, err := store.FindByExternalID(ctx, "tw-42")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, owner.ID)

	bobAfter, err := store.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob, bobAfter)
}

func TestResolveExternalRejectsEmptyIdentity(t *testing.T) {
	r, _ := newResolver(t)

	_, err := r.ResolveExternal(context.Background(), nil, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = r.ResolveExternal(context.Background(), &auth.Identity{DisplayName: "x"}, nil)
	assert.True(t, apperr.IsValidation(err))
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) result(args mock.Arguments) (*account.Account, error) {
	acc, _ := args.Get(0).(*account.Account)
	return acc, args.Error(1)
}

func (m *mockStore) FindByID(ctx context.Context, id string) (*account.Account, error) {
	return m.result(m.Called(ctx, id))
}

func (m *mockStore) FindByUsernameOrEmail(ctx context.Context, key string) (*account.Account, error) {
	return m.result(m.Called(ctx, key))
}

func (m *mockStore) FindByExternalID(ctx context.Context, externalID string) (*account.Account, error) {
	return m.result(m.Called(ctx, externalID))
}

func (m *mockStore) InsertLocal(ctx context.Context, username, email, passwordHash string) (*account.Account, error) {
	return m.result(m.Called(ctx, username, email, passwordHash))
}

func (m *mockStore) InsertExternal(ctx context.Context, externalID, displayName string) (*account.Account, error) {
	return m.result(m.Called(ctx, externalID, displayName))
}

func (m *mockStore) BindExternalID(ctx context.Context, accountID, externalID, displayName string) (*account.Account, error) {
	return m.result(m.Called(ctx, accountID, externalID, displayName))
}

func TestResolveExternalAdoptsWinnerAfterInsertConflict(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	winner := &account.Account{ID: "winner", ExternalID: "tw-1"}

	store.On("FindByExternalID", ctx, "tw-1").Return(nil, account.ErrNotFound).Once()
	store.On("InsertExternal", ctx, "tw-1", "One").Return(nil, account.ErrConflict).Once()
	store.On("FindByExternalID", ctx, "tw-1").Return(winner, nil).Once()

	r := resolver.NewStoreResolver(store, credentials.NewHasherWithCost(1, bcrypt.MinCost))
	got, err := r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-1", DisplayName: "One"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "winner", got.ID)
	store.AssertExpectations(t)
}

func TestLoginWithoutLocalCredential(t *testing.T) {
	ctx := context.Background()
	store := &mockStore{}
	store.On("FindByUsernameOrEmail", ctx, "streamer").
		Return(&account.Account{ID: "1", Username: "streamer", ExternalID: "tw-1"}, nil)

	r := resolver.NewStoreResolver(store, credentials.NewHasherWithCost(1, bcrypt.MinCost))
	_, err := r.LoginLocal(ctx, "streamer", "pw1")

	var authErr *apperr.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "no local credential", authErr.Reason)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestStorageFailuresPropagate(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	store := &mockStore{}
	store.On("FindByUsernameOrEmail", ctx, "alice").Return(nil, boom)
	store.On("FindByExternalID", ctx, "tw-1").Return(nil, boom)
	store.On("InsertLocal", ctx, "alice", "a@x.com", mock.AnythingOfType("string")).Return(nil, boom)

	r := resolver.NewStoreResolver(store, credentials.NewHasherWithCost(1, bcrypt.MinCost))

	_, err := r.LoginLocal(ctx, "alice", "pw1")
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperr.IsAuth(err))

	_, err = r.ResolveExternal(ctx, &auth.Identity{ExternalID: "tw-1"}, nil)
	assert.ErrorIs(t, err, boom)

	_, err = r.RegisterLocal(ctx, "alice", "a@x.com", "pw1")
	assert.ErrorIs(t, err, boom)
	assert.False(t, apperr.IsValidation(err))

	store.AssertNumberOfCalls(t, "FindByExternalID", 1)
}
