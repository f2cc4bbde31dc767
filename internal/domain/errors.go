package domain

import "errors"

var (
	// ErrInvalidCredentials is returned when the backend rejects a login
	// attempt with HTTP 401.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrRateLimited is returned when the backend throttles login attempts
	// with HTTP 429.
	ErrRateLimited = errors.New("too many login attempts, wait and retry")

	// ErrProtocol is returned when the backend answers a login with a
	// structurally invalid bearer token. Such a token is never stored.
	ErrProtocol = errors.New("server returned a malformed auth token")

	// ErrTransport covers network-level failures (DNS, refused connection,
	// timeout).
	ErrTransport = errors.New("transport failure")

	// ErrSessionInvalidated is returned to the caller of an authenticated
	// call that came back HTTP 401 mid-session. The credential has already
	// been cleared by the time the caller sees it.
	ErrSessionInvalidated = errors.New("session invalidated by server")

	ErrMalformedToken     = errors.New("malformed bearer token")
	ErrCredentialNotFound = errors.New("credential not found")
	ErrProfileNotFound    = errors.New("profile not found")
)
