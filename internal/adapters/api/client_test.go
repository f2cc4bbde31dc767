package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticAuthorizer struct {
	token       string
	hasToken    bool
	invalidated atomic.Int64
}

func (a *staticAuthorizer) Token(context.Context) (string, bool) {
	return a.token, a.hasToken
}

func (a *staticAuthorizer) Invalidate(context.Context) {
	a.invalidated.Add(1)
}

func TestClientInjectsFreshBearerToken(t *testing.T) {
	t.Parallel()

	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"total":0}`))
	}))
	defer server.Close()

	auth := &staticAuthorizer{token: "first-token", hasToken: true}
	client := NewClient(server.URL, server.Client(), auth)

	_, err := client.SearchGames(context.Background(), "portal", 5)
	require.NoError(t, err)
	assert.Equal(t, "Bearer first-token", seen)

	auth.token = "second-token"

	_, err = client.SearchGames(context.Background(), "portal", 5)
	require.NoError(t, err)
	assert.Equal(t, "Bearer second-token", seen, "token must be re-read per request")
}

func TestClientOmitsAuthorizationWithoutToken(t *testing.T) {
	t.Parallel()

	var seen string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &staticAuthorizer{})

	_, err := client.Settings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, seen)
}

func TestClientUnauthorizedInvalidatesSession(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"token expired"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	auth := &staticAuthorizer{token: "stale", hasToken: true}
	client := NewClient(server.URL, server.Client(), auth)

	_, err := client.RecordStats(context.Background())
	assert.ErrorIs(t, err, domain.ErrSessionInvalidated)
	assert.Equal(t, int64(1), auth.invalidated.Load())
}

func TestClientRateLimitedMapsToSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	auth := &staticAuthorizer{token: "tok", hasToken: true}
	client := NewClient(server.URL, server.Client(), auth)

	_, err := client.RecordStats(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Zero(t, auth.invalidated.Load(), "rate limiting must not end the session")
}

func TestClientSurfacesBackendDetail(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"app not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &staticAuthorizer{token: "tok", hasToken: true})

	_, err := client.Record(context.Background(), 42)
	require.Error(t, err)
	assert.ErrorContains(t, err, "app not found")
}

func TestClientTransportFailureMapsToSentinel(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, nil, &staticAuthorizer{token: "tok", hasToken: true})

	_, err := client.RecordStats(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestClientCollectRoundTrip(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/collect", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"app_id":440,"action":"created","post_id":9001,"record_id":7}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &staticAuthorizer{token: "tok", hasToken: true})

	result, err := client.Collect(context.Background(), CollectRequest{AppID: 440, EnableRewrite: true})
	require.NoError(t, err)
	assert.Equal(t, CollectResult{AppID: 440, Action: "created", PostID: 9001, RecordID: 7}, result)
}

func TestClientRecordsEncodesQuery(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "failed", r.URL.Query().Get("status"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "20", r.URL.Query().Get("offset"))
		_, _ = w.Write([]byte(`{"total":0,"items":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &staticAuthorizer{token: "tok", hasToken: true})

	_, err := client.Records(context.Background(), RecordsQuery{Status: "failed", Limit: 10, Offset: 20})
	require.NoError(t, err)
}

func TestClientDeleteRecordAcceptsEmptyBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client(), &staticAuthorizer{token: "tok", hasToken: true})

	require.NoError(t, client.DeleteRecord(context.Background(), 3))
}
