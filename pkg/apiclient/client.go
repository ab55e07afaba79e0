// Package apiclient is the caller-side session wrapper for the auth API. It
// keeps the issued token in a TokenStore slot, attaches it as a bearer
// credential on every request, and treats any 401 from the server as "session
// invalid": the slot is cleared and the session-expired handler fires so the
// caller can send the user back to login.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// tokenSlotTTL stamps the stored token with a one-day expiry, mirroring the
// web frontend's cookie lifetime rather than the server's token timeout.
const tokenSlotTTL = 24 * time.Hour

// User is the sanitized user record the API returns.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// AuthResponse is the body of a successful register or login call.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the auth API on behalf of one caller-side session.
type Client struct {
	baseURL   string
	http      *http.Client
	store     TokenStore
	onExpired func()
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.store = s }
}

// WithSessionExpiredHandler sets the hook invoked after a 401 clears the
// stored token; the web frontend's equivalent is redirecting to /login.
func WithSessionExpiredHandler(fn func()) Option {
	return func(c *Client) { c.onExpired = fn }
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		store:   NewMemoryTokenStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login authenticates and stores the issued token in the slot.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.store.Save(resp.Token, time.Now().Add(tokenSlotTTL)); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Register creates an account and stores the issued token in the slot.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		if err := c.store.Save(resp.Token, time.Now().Add(tokenSlotTTL)); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// GetProfile fetches the authenticated user's record.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// VerifyToken collapses the verify endpoint to a boolean: true only when the
// server accepts the stored token.
func (c *Client) VerifyToken(ctx context.Context) bool {
	var resp struct {
		Valid bool `json:"valid"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return false
	}
	return resp.Valid
}

// Logout clears the stored token. Purely local: the server keeps no session
// state and the token itself stays valid until it expires.
func (c *Client) Logout() error {
	return c.store.Clear()
}

// IsAuthenticated reports whether an unexpired token is in the slot. It does
// not consult the server; use VerifyToken for that.
func (c *Client) IsAuthenticated() bool {
	_, err := c.store.Load()
	return err == nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.store.Load(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		_ = c.store.Clear()
		if c.onExpired != nil {
			c.onExpired()
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
