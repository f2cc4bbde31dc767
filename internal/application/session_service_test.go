package application

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/bnema/sc-console-cli/internal/ports"
)

const testCredentialKey = "scconsole/test/auth_token"

type fakeCredentialStore struct {
	values  map[string]string
	getErr  error
	putErr  error
	deleted int
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{values: map[string]string{}}
}

func (s *fakeCredentialStore) Get(_ context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	value, ok := s.values[key]
	if !ok {
		return "", ports.ErrNotStored
	}
	return value, nil
}

func (s *fakeCredentialStore) Put(_ context.Context, key, value string) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.values[key] = value
	return nil
}

func (s *fakeCredentialStore) Delete(_ context.Context, key string) error {
	delete(s.values, key)
	s.deleted++
	return nil
}

type fakeAuthAPI struct {
	token string
	err   error

	lastUsername string
	lastPassword string
}

func (a *fakeAuthAPI) Login(_ context.Context, username, password string) (string, error) {
	a.lastUsername = username
	a.lastPassword = password
	if a.err != nil {
		return "", a.err
	}
	return a.token, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func signedToken(t *testing.T, subject string, expiresAt time.Time) string {
	t.Helper()

	encode := func(v any) string {
		data, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(data)
	}

	header := encode(map[string]string{"alg": "HS256", "typ": "JWT"})
	payload := encode(map[string]any{"sub": subject, "exp": expiresAt.Unix()})

	return header + "." + payload + ".sig"
}

func TestSessionServiceLoginStoresToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := newFakeCredentialStore()
	token := signedToken(t, "alice", now.Add(time.Hour))
	auth := &fakeAuthAPI{token: token}

	service := NewSessionService(store, auth, fixedClock{now: now}, testCredentialKey)

	require.NoError(t, service.Login(context.Background(), "alice", "hunter2"))
	assert.Equal(t, "alice", auth.lastUsername)
	assert.Equal(t, "hunter2", auth.lastPassword)
	assert.Equal(t, token, store.values[testCredentialKey])
	assert.True(t, service.IsAuthenticated(context.Background()))
}

func TestSessionServiceLoginRejectionStoresNothing(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	auth := &fakeAuthAPI{err: domain.ErrInvalidCredentials}
	service := NewSessionService(store, auth, fixedClock{now: time.Now()}, testCredentialKey)

	err := service.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.Empty(t, store.values)
	assert.False(t, service.IsAuthenticated(context.Background()))
}

func TestSessionServiceLoginRejectsUnusableToken(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	auth := &fakeAuthAPI{token: "not-a-jwt"}
	service := NewSessionService(store, auth, fixedClock{now: time.Now()}, testCredentialKey)

	err := service.Login(context.Background(), "alice", "hunter2")
	assert.ErrorIs(t, err, domain.ErrProtocol)
	assert.Empty(t, store.values)
}

func TestSessionServiceIsAuthenticatedWithoutCredential(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: time.Now()}, testCredentialKey)

	assert.False(t, service.IsAuthenticated(context.Background()))
	assert.Zero(t, store.deleted, "absence is a valid state, nothing to heal")
}

func TestSessionServicePurgesExpiredToken(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := newFakeCredentialStore()
	store.values[testCredentialKey] = signedToken(t, "alice", now.Add(-time.Minute))

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: now}, testCredentialKey)

	var logoutFired int
	service.NotifyLogout(func() { logoutFired++ })

	assert.False(t, service.IsAuthenticated(context.Background()))
	assert.Empty(t, store.values, "expired credential must be purged on read")
	assert.Equal(t, 1, logoutFired)

	// Second read finds nothing and heals nothing.
	assert.False(t, service.IsAuthenticated(context.Background()))
	assert.Equal(t, 1, logoutFired)
}

func TestSessionServiceTreatsMarginAsExpired(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := newFakeCredentialStore()
	store.values[testCredentialKey] = signedToken(t, "alice", now.Add(domain.ExpirySafetyMargin/2))

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: now}, testCredentialKey)

	_, ok := service.Token(context.Background())
	assert.False(t, ok)
	assert.Empty(t, store.values)
}

func TestSessionServicePurgesMalformedToken(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	store.values[testCredentialKey] = "garbage-from-an-old-version"

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: time.Now()}, testCredentialKey)

	assert.False(t, service.IsAuthenticated(context.Background()))
	assert.Empty(t, store.values)
}

func TestSessionServiceLogoutIsIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := newFakeCredentialStore()
	store.values[testCredentialKey] = signedToken(t, "alice", now.Add(time.Hour))

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: now}, testCredentialKey)

	var logoutFired int
	service.NotifyLogout(func() { logoutFired++ })

	require.NoError(t, service.Logout(context.Background()))
	assert.Empty(t, store.values)
	assert.Equal(t, 1, logoutFired)

	require.NoError(t, service.Logout(context.Background()))
	assert.Equal(t, 1, logoutFired, "logout with no session must not refire hooks")
}

func TestSessionServiceInvalidateEndsSession(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := newFakeCredentialStore()
	store.values[testCredentialKey] = signedToken(t, "alice", now.Add(time.Hour))

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: now}, testCredentialKey)

	var logoutFired int
	service.NotifyLogout(func() { logoutFired++ })

	service.Invalidate(context.Background())
	assert.False(t, service.IsAuthenticated(context.Background()))
	assert.Equal(t, 1, logoutFired)
}

func TestSessionServiceCurrentReturnsClaims(t *testing.T) {
	t.Parallel()

	now := time.Now()
	expiry := now.Add(time.Hour).Truncate(time.Second)
	store := newFakeCredentialStore()
	store.values[testCredentialKey] = signedToken(t, "alice", expiry)

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: now}, testCredentialKey)

	claims, err := service.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(expiry))
}

func TestSessionServiceCurrentWithoutSession(t *testing.T) {
	t.Parallel()

	service := NewSessionService(newFakeCredentialStore(), &fakeAuthAPI{}, fixedClock{now: time.Now()}, testCredentialKey)

	_, err := service.Current(context.Background())
	assert.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestSessionServiceTokenSurvivesStoreReadError(t *testing.T) {
	t.Parallel()

	store := newFakeCredentialStore()
	store.getErr = errors.New("disk on fire")

	service := NewSessionService(store, &fakeAuthAPI{}, fixedClock{now: time.Now()}, testCredentialKey)

	_, ok := service.Token(context.Background())
	assert.False(t, ok)
	assert.Zero(t, store.deleted)
}
