package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/bnema/sc-console-cli/internal/ports"
)

// SessionService owns the bearer credential lifecycle: it is the only writer
// of the stored token. Reads are self-healing: a stored token that is expired
// or structurally broken is purged on sight, so no other layer ever observes
// a stale credential as an open session.
type SessionService struct {
	store   ports.CredentialStore
	authAPI ports.AuthAPI
	clock   ports.Clock
	key     string

	mu          sync.Mutex
	logoutHooks []func()
}

func NewSessionService(store ports.CredentialStore, authAPI ports.AuthAPI, clock ports.Clock, credentialKey string) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		store:   store,
		authAPI: authAPI,
		clock:   clock,
		key:     credentialKey,
	}
}

// NotifyLogout registers a hook fired whenever an open session ends, whether
// by explicit logout, self-healing, or a server-side rejection. Hooks do not
// fire when logout finds no stored credential.
func (s *SessionService) NotifyLogout(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logoutHooks = append(s.logoutHooks, hook)
}

// Login exchanges credentials for a bearer token and stores it. The token is
// decoded before storage; an undecodable token from the backend is a protocol
// fault and nothing is written.
func (s *SessionService) Login(ctx context.Context, username, password string) error {
	token, err := s.authAPI.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if _, err := domain.DecodeClaims(token); err != nil {
		return fmt.Errorf("%w: login returned unusable token: %w", domain.ErrProtocol, err)
	}

	if err := s.store.Put(ctx, s.key, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}

	return nil
}

// Logout removes the stored credential. Calling it with no open session is a
// no-op; hooks fire only when a credential was actually removed.
func (s *SessionService) Logout(ctx context.Context) error {
	removed, err := s.clearCredential(ctx)
	if err != nil {
		return err
	}
	if removed {
		s.fireLogoutHooks()
	}

	return nil
}

// IsAuthenticated reports whether a usable session exists right now. A token
// within the expiry safety margin counts as expired and is purged.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	_, ok := s.Token(ctx)
	return ok
}

// Token returns the current bearer token when a valid session exists. It is
// the read side of the api.Authorizer contract.
func (s *SessionService) Token(ctx context.Context) (string, bool) {
	token, err := s.store.Get(ctx, s.key)
	if err != nil {
		return "", false
	}

	if !domain.TokenValid(token, s.clock.Now()) {
		if removed, _ := s.clearCredential(ctx); removed {
			s.fireLogoutHooks()
		}
		return "", false
	}

	return token, true
}

// Invalidate ends the session after the backend rejected the credential. It
// is the write side of the api.Authorizer contract.
func (s *SessionService) Invalidate(ctx context.Context) {
	_ = s.Logout(ctx)
}

// Current returns the decoded claims of the open session, or
// ErrCredentialNotFound when none exists.
func (s *SessionService) Current(ctx context.Context) (domain.Claims, error) {
	token, ok := s.Token(ctx)
	if !ok {
		return domain.Claims{}, domain.ErrCredentialNotFound
	}

	claims, err := domain.DecodeClaims(token)
	if err != nil {
		return domain.Claims{}, err
	}

	return claims, nil
}

func (s *SessionService) clearCredential(ctx context.Context) (bool, error) {
	if _, err := s.store.Get(ctx, s.key); err != nil {
		if errors.Is(err, ports.ErrNotStored) {
			return false, nil
		}
		return false, fmt.Errorf("inspect credential: %w", err)
	}

	if err := s.store.Delete(ctx, s.key); err != nil {
		return false, fmt.Errorf("remove credential: %w", err)
	}

	return true, nil
}

func (s *SessionService) fireLogoutHooks() {
	s.mu.Lock()
	hooks := make([]func(), len(s.logoutHooks))
	copy(hooks, s.logoutHooks)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}
