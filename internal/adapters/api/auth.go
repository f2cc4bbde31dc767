package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/sc-console-cli/internal/domain"
	"github.com/bnema/sc-console-cli/internal/ports"
)

// AuthClient talks to the login endpoint only. It deliberately bypasses the
// authenticated Client so a 401 on a login attempt stays an
// ErrInvalidCredentials for the form, instead of being intercepted as a
// session invalidation while the user is already on the login surface.
type AuthClient struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration
}

var _ ports.AuthAPI = (*AuthClient)(nil)

func NewAuthClient(baseURL string, httpClient *http.Client) *AuthClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &AuthClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     httpClient,
		requestTimeout: 30 * time.Second,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login submits the credentials and returns the raw bearer token. 401 maps
// to ErrInvalidCredentials, 429 to ErrRateLimited, network failures to
// ErrTransport; the caller decides whether the token itself is acceptable.
func (a *AuthClient) Login(ctx context.Context, username, password string) (string, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("marshal login request: %w", err)
	}

	requestCtx, cancel := context.WithTimeout(ctx, a.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, a.baseURL+"/api/auth/login", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("login: %w: %w", domain.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("login: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return "", domain.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.ErrRateLimited
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return "", fmt.Errorf("login: %s", describeFailure(resp.StatusCode, body))
	}

	var decoded loginResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("login: %w: %w", domain.ErrProtocol, err)
	}

	return decoded.Token, nil
}
