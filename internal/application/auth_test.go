package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/contentkit-cli/internal/domain"
	"github.com/bnema/contentkit-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixedClock(t *testing.T) *mocks.MockClock {
	t.Helper()

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)).Maybe()
	return clock
}

func TestSignInStoresTokenAndSession(t *testing.T) {
	sessions := signedOut()
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Put(mock.Anything, "accounts/acct-9/token", "tok-123").Return(nil).Once()

	service := NewAuthService(sessions, store, fixedClock(t))
	session, err := service.SignIn(context.Background(), " acct-9 ", "ada@example.com", " tok-123 ")
	require.NoError(t, err)

	assert.Equal(t, domain.AccountID("acct-9"), session.AccountID)
	assert.Equal(t, "accounts/acct-9/token", session.TokenRef)
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), session.SignedInAt)
	assert.Equal(t, session, sessions.session)
}

func TestSignInWithoutTokenSkipsStore(t *testing.T) {
	store := mocks.NewMockSecretStore(t)

	session, err := NewAuthService(signedOut(), store, fixedClock(t)).SignIn(context.Background(), "acct-9", "", "")
	require.NoError(t, err)

	assert.Empty(t, session.TokenRef)
	store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignInRequiresAccountID(t *testing.T) {
	_, err := NewAuthService(signedOut(), mocks.NewMockSecretStore(t), fixedClock(t)).SignIn(context.Background(), "  ", "", "tok")
	require.Error(t, err)
}

func TestSignInRollsBackTokenWhenSaveFails(t *testing.T) {
	sessions := mocks.NewMockSessionRepository(t)
	sessions.EXPECT().Current(mock.Anything).Return(domain.Session{}, domain.ErrSessionNotFound).Once()
	sessions.EXPECT().Save(mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Put(mock.Anything, "accounts/acct-9/token", "tok").Return(nil).Once()
	store.EXPECT().Delete(mock.Anything, "accounts/acct-9/token").Return(nil).Once()

	_, err := NewAuthService(sessions, store, fixedClock(t)).SignIn(context.Background(), "acct-9", "", "tok")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestSignInReplacesPreviousAccountToken(t *testing.T) {
	sessions := &memorySessions{session: domain.Session{AccountID: "acct-1", TokenRef: "accounts/acct-1/token"}}
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Put(mock.Anything, "accounts/acct-2/token", "tok").Return(nil).Once()
	store.EXPECT().Delete(mock.Anything, "accounts/acct-1/token").Return(nil).Once()

	_, err := NewAuthService(sessions, store, fixedClock(t)).SignIn(context.Background(), "acct-2", "", "tok")
	require.NoError(t, err)
	assert.Equal(t, domain.AccountID("acct-2"), sessions.session.AccountID)
}

func TestSignOutClearsSessionAndToken(t *testing.T) {
	sessions := &memorySessions{session: domain.Session{AccountID: "acct-1", TokenRef: "accounts/acct-1/token"}}
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Delete(mock.Anything, "accounts/acct-1/token").Return(nil).Once()

	require.NoError(t, NewAuthService(sessions, store, fixedClock(t)).SignOut(context.Background()))
	assert.False(t, sessions.session.SignedIn())
}

func TestSignOutWithoutSessionIsNoop(t *testing.T) {
	store := mocks.NewMockSecretStore(t)
	require.NoError(t, NewAuthService(signedOut(), store, fixedClock(t)).SignOut(context.Background()))
}

func TestAccessToken(t *testing.T) {
	sessions := &memorySessions{session: domain.Session{AccountID: "acct-1", TokenRef: "ref"}}
	store := mocks.NewMockSecretStore(t)
	store.EXPECT().Get(mock.Anything, "ref").Return("tok\n", nil).Once()

	token, err := NewAuthService(sessions, store, fixedClock(t)).AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)

	token, err = NewAuthService(signedOut(), store, fixedClock(t)).AccessToken(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}
