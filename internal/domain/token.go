package domain

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpirySafetyMargin is subtracted from the remaining token lifetime before
// declaring a credential valid, to absorb clock skew and requests already in
// flight when the token lapses.
const ExpirySafetyMargin = 10 * time.Second

// Claims carries the fields decoded from a bearer token payload. The decode
// is unverified: the client never checks the signature, it only inspects the
// expiry for UX purposes. The server remains the authority on every request.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// DecodeClaims extracts the claims from a three-segment bearer token without
// verifying its signature. A token that is not shaped like a JWT, whose
// payload is not valid base64url JSON, or whose payload lacks an exp field
// yields ErrMalformedToken.
func DecodeClaims(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrMalformedToken
	}

	var registered jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &registered); err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	if registered.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	claims := Claims{
		Subject:   registered.Subject,
		ExpiresAt: registered.ExpiresAt.Time,
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}

// TokenValid reports whether the token decodes and still has more than
// ExpirySafetyMargin of lifetime left at the given instant.
func TokenValid(token string, now time.Time) bool {
	claims, err := DecodeClaims(token)
	if err != nil {
		return false
	}

	return claims.ExpiresAt.After(now.Add(ExpirySafetyMargin))
}
