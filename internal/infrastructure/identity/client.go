// Package identity binds the session manager to the RoPilot API: it speaks
// the /v1/auth wire protocol and implements session.Identity over HTTP.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/maqsafnadatabase3/Ropoilet/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// ErrUnauthorized is returned when the server rejects the credential. It
// wraps domain.ErrInvalidCredentials so the session manager can tell a
// rejection from a transport failure.
var ErrUnauthorized = fmt.Errorf("identity: %w", domain.ErrInvalidCredentials)

// Client is an HTTP client for the /v1/auth endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type authPayload struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
}

type authEnvelope struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	Error string       `json:"error"`
}

// Authenticate exchanges credentials for a token via POST /v1/auth/login.
func (c *Client) Authenticate(ctx context.Context, email, password string) (*domain.User, string, error) {
	env, err := c.post(ctx, "/v1/auth/login", authPayload{Email: email, Password: password}, "")
	if err != nil {
		return nil, "", err
	}
	return env.User, env.Token, nil
}

// Register creates an account via POST /v1/auth/register.
func (c *Client) Register(ctx context.Context, email, password, name string) (*domain.User, string, error) {
	env, err := c.post(ctx, "/v1/auth/register", authPayload{Email: email, Password: password, Name: name}, "")
	if err != nil {
		return nil, "", err
	}
	return env.User, env.Token, nil
}

// Validate checks a stored token via GET /v1/auth/session.
func (c *Client) Validate(ctx context.Context, credential string) (*domain.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/auth/session", nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	env, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// Invalidate revokes a token via POST /v1/auth/logout. Best effort: the
// session manager clears local state regardless.
func (c *Client) Invalidate(ctx context.Context, credential string) error {
	_, err := c.post(ctx, "/v1/auth/logout", nil, credential)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any, credential string) (*authEnvelope, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("identity: marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("identity: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*authEnvelope, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("identity: read response: %w", err)
	}

	var env authEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("identity: decode response: %w", err)
		}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode >= 300:
		if env.Error != "" {
			return nil, fmt.Errorf("identity: %s", env.Error)
		}
		return nil, fmt.Errorf("identity: unexpected status %d", resp.StatusCode)
	}
	return &env, nil
}
