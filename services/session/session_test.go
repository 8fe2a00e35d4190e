package session

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"medibook/services/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) WhoAmI(accountID, role string) (*account.Identity, error) {
	args := m.Called(accountID, role)
	if id, ok := args.Get(0).(*account.Identity); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func testAuth() account.AuthResponse {
	return account.AuthResponse{
		ID:       "acct-1",
		Token:    "token-abc",
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Role:     "patient",
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	snap := Snapshot{
		Token: "token-abc",
		Identity: account.Identity{
			ID:            "acct-1",
			Role:          "patient",
			FullName:      "Jane Doe",
			Email:         "jane@example.com",
			EmailVerified: true,
		},
		SavedAt: time.Now(),
	}

	require.NoError(t, store.Save(ctx, "acct-1", snap))

	loaded, err := store.Load(ctx, "acct-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	want, err := json.Marshal(snap)
	require.NoError(t, err)
	got, err := json.Marshal(*loaded)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestLoadMissingSnapshot(t *testing.T) {
	store := NewMemoryStore()
	loaded, err := store.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestEstablishPersistsAndAuthenticates(t *testing.T) {
	store := NewMemoryStore()
	sess := New("acct-1", store, &MockResolver{})

	require.NoError(t, sess.Establish(context.Background(), testAuth()))

	assert.Equal(t, Authenticated, sess.State())
	assert.Equal(t, "token-abc", sess.Token())
	require.NotNil(t, sess.Identity())
	assert.Equal(t, "jane@example.com", sess.Identity().Email)

	loaded, err := store.Load(context.Background(), "acct-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "token-abc", loaded.Token)
}

func TestEstablishRejectsUnverifiedAccount(t *testing.T) {
	store := NewMemoryStore()
	sess := New("acct-1", store, &MockResolver{})

	auth := account.AuthResponse{
		ID:                   "acct-1",
		Email:                "jane@example.com",
		Role:                 "patient",
		RequiresVerification: true,
	}
	err := sess.Establish(context.Background(), auth)
	require.Error(t, err)

	assert.Equal(t, Unauthenticated, sess.State())
	assert.Empty(t, sess.Token())

	loaded, err := store.Load(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Nil(t, loaded, "nothing should be persisted for an unverified account")
}

func TestBootstrapWithoutSnapshot(t *testing.T) {
	sess := New("acct-1", NewMemoryStore(), &MockResolver{})

	err := sess.Bootstrap(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, Unauthenticated, sess.State())
}

func TestBootstrapRevalidatesIdentity(t *testing.T) {
	store := NewMemoryStore()
	resolver := new(MockResolver)
	resolver.On("WhoAmI", "acct-1", "patient").Return(&account.Identity{
		ID:            "acct-1",
		Role:          "patient",
		FullName:      "Jane A. Doe",
		Email:         "jane@example.com",
		EmailVerified: true,
	}, nil)

	sess := New("acct-1", store, resolver)
	require.NoError(t, sess.Establish(context.Background(), testAuth()))

	resumed := New("acct-1", store, resolver)
	require.NoError(t, resumed.Bootstrap(context.Background()))

	assert.Equal(t, Authenticated, resumed.State())
	assert.Equal(t, "token-abc", resumed.Token())
	assert.Equal(t, "Jane A. Doe", resumed.Identity().FullName, "identity should be refreshed from the account store")
	resolver.AssertExpectations(t)
}

func TestBootstrapSingleFailureIsFatal(t *testing.T) {
	store := NewMemoryStore()
	resolver := new(MockResolver)
	resolver.On("WhoAmI", "acct-1", "patient").Return(nil, fmt.Errorf("account disabled")).Once()

	sess := New("acct-1", store, resolver)
	require.NoError(t, sess.Establish(context.Background(), testAuth()))

	resumed := New("acct-1", store, resolver)
	err := resumed.Bootstrap(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
	assert.Equal(t, Unauthenticated, resumed.State())

	loaded, loadErr := store.Load(context.Background(), "acct-1")
	require.NoError(t, loadErr)
	assert.Nil(t, loaded, "failed revalidation should clear persisted state")
	resolver.AssertNumberOfCalls(t, "WhoAmI", 1)
}

func TestLogoutClearsEverything(t *testing.T) {
	store := NewMemoryStore()
	sess := New("acct-1", store, &MockResolver{})
	require.NoError(t, sess.Establish(context.Background(), testAuth()))

	require.NoError(t, sess.Logout(context.Background()))
	assert.Equal(t, Unauthenticated, sess.State())
	assert.Nil(t, sess.Identity())

	loaded, err := store.Load(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unauthenticated", Unauthenticated.String())
	assert.Equal(t, "authenticating", Authenticating.String())
	assert.Equal(t, "authenticated", Authenticated.String())
}
