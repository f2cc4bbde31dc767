package domain

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bearerToken(t *testing.T, payload map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	return header + "." + base64.RawURLEncoding.EncodeToString(body) + ".sig"
}

func TestDecodeClaimsReadsSubjectAndExpiry(t *testing.T) {
	t.Parallel()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	token := bearerToken(t, map[string]any{"sub": "alice", "exp": expiresAt.Unix()})

	claims, err := DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.True(t, claims.ExpiresAt.Equal(expiresAt))
}

func TestDecodeClaimsRejectsStructurallyInvalidTokens(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "opaque string", token: "not-a-jwt"},
		{name: "two segments", token: "aGVhZGVy.cGF5bG9hZA"},
		{name: "four segments", token: "a.b.c.d"},
		{name: "payload not base64", token: "aGVhZGVy.!!!.c2ln"},
		{name: "payload not json", token: "aGVhZGVy." + base64.RawURLEncoding.EncodeToString([]byte("plain text")) + ".c2ln"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeClaims(tc.token)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedToken)
		})
	}
}

func TestDecodeClaimsRequiresExpClaim(t *testing.T) {
	t.Parallel()

	token := bearerToken(t, map[string]any{"sub": "alice"})

	_, err := DecodeClaims(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedToken)
}

func TestTokenValidAppliesSafetyMargin(t *testing.T) {
	t.Parallel()

	now := time.Now()
	testCases := []struct {
		name string
		exp  time.Time
		want bool
	}{
		{name: "one hour left", exp: now.Add(time.Hour), want: true},
		{name: "just outside margin", exp: now.Add(ExpirySafetyMargin + 2*time.Second), want: true},
		{name: "inside margin", exp: now.Add(ExpirySafetyMargin / 2), want: false},
		{name: "already expired", exp: now.Add(-time.Minute), want: false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			token := bearerToken(t, map[string]any{"sub": "alice", "exp": tc.exp.Unix()})
			assert.Equal(t, tc.want, TokenValid(token, now))
		})
	}
}

func TestTokenValidRejectsMalformedToken(t *testing.T) {
	t.Parallel()

	assert.False(t, TokenValid("garbage", time.Now()))
}
