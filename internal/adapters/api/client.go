package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/sc-console-cli/internal/domain"
)

const maxResponseBytes = 1 << 20

// Authorizer supplies the current bearer credential for outbound calls and
// reacts to a server-side session rejection. Implemented by the session
// service, which stays the sole writer of the credential.
type Authorizer interface {
	Token(ctx context.Context) (string, bool)
	Invalidate(ctx context.Context)
}

// Client wraps every authenticated REST call against the collector backend.
// The bearer credential is read through the Authorizer on each request, never
// cached at construction, so a re-login mid-session is picked up immediately.
// A 401 on any call is translated exactly once, here, into a session
// invalidation; callers receive domain.ErrSessionInvalidated and must not
// special-case 401 themselves.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	auth           Authorizer
	requestTimeout time.Duration
}

func NewClient(baseURL string, httpClient *http.Client, auth Authorizer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     httpClient,
		auth:           auth,
		requestTimeout: 30 * time.Second,
	}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, result)
}

func (c *Client) post(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, result)
}

func (c *Client) put(ctx context.Context, path string, body any, result any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, result)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	endpoint, err := buildURL(c.baseURL, path, query)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if token, ok := c.auth.Token(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %w", method, path, domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.auth.Invalidate(ctx)
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrSessionInvalidated)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrRateLimited)
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return fmt.Errorf("%s %s: %s", method, path, describeFailure(resp.StatusCode, respBody))
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}

	return nil
}

func buildURL(baseURL, path string, query url.Values) (string, error) {
	parsed, err := url.Parse(baseURL + path)
	if err != nil {
		return "", fmt.Errorf("build request url: %w", err)
	}
	if len(query) > 0 {
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

func describeFailure(status int, body []byte) string {
	var envelope errorBody
	if json.Unmarshal(body, &envelope) == nil && envelope.Detail != "" {
		return fmt.Sprintf("backend error (%d): %s", status, envelope.Detail)
	}

	return fmt.Sprintf("backend error (%d)", status)
}
