// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the admin API client.
type ClientConfig struct {
	// BaseURL is the admin API base URL
	BaseURL string

	// Timeout for requests (default: 30s)
	Timeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: "https://classconnect-backoffice-service-api.onrender.com",
		Timeout: 30 * time.Second,
	}
}

// TokenSource supplies the stored bearer token. The session store
// satisfies this; tests substitute their own.
type TokenSource interface {
	Token() (string, bool)
	ClearToken() error
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the admin API. It is safe for
// concurrent use.
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
}

// NewClient creates a client with the given configuration and token
// source. Zero config values fall back to defaults.
func NewClient(config *ClientConfig, tokens TokenSource) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultConfig().BaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		tokens: tokens,
		// Smooths accidental rapid re-invocation of the same control;
		// requests are delayed, never dropped.
		limiter: rate.NewLimiter(rate.Limit(10), 5),
	}
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// NormalizeBearer prefixes the token with the bearer scheme unless it
// already carries it.
func NormalizeBearer(tok string) string {
	if strings.HasPrefix(tok, "Bearer ") {
		return tok
	}
	return "Bearer " + tok
}

// =============================================================================
// REQUEST CORE
// =============================================================================

// requestSpec describes one API call for the shared request path.
type requestSpec struct {
	method string
	path   string
	body   any
	auth   bool // attach the bearer token; fail fast when absent
	login  bool // 401 maps to InvalidCredentials instead of SessionExpired
}

// do runs one request and returns the response for 2xx statuses. All
// failures come back as *Error. The caller owns resp.Body.
func (c *Client) do(ctx context.Context, spec requestSpec) (*http.Response, error) {
	var authHeader string
	if spec.auth {
		tok, ok := c.tokens.Token()
		if !ok {
			// No network call: the caller redirects to login.
			return nil, &Error{Kind: KindUnauthorized, Message: "no session token held"}
		}
		authHeader = NormalizeBearer(tok)
	}

	var bodyReader io.Reader
	if spec.body != nil {
		data, err := json.Marshal(spec.body)
		if err != nil {
			return nil, &Error{Kind: KindInvalidResponse, Message: "failed to marshal request", Cause: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request canceled", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.config.BaseURL+spec.path, bodyReader)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "failed to create request", Cause: err}
	}
	if spec.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Message: "request failed", Cause: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	drainAndClose(resp.Body)
	return nil, c.statusError(resp.StatusCode, spec.login)
}

// statusError maps a non-success status to the error taxonomy. A 401
// outside login also clears the stored token: the server has told us
// the session is dead.
func (c *Client) statusError(status int, login bool) *Error {
	switch status {
	case http.StatusUnauthorized:
		if login {
			return &Error{Kind: KindInvalidCredentials, Message: "invalid credentials", Status: status}
		}
		c.tokens.ClearToken()
		return &Error{Kind: KindSessionExpired, Message: "session expired", Status: status}
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: "forbidden", Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: "endpoint not found or service unreachable", Status: status}
	case http.StatusConflict:
		return &Error{Kind: KindConflict, Message: "conflict", Status: status}
	case http.StatusInternalServerError:
		return &Error{Kind: KindServerError, Message: "internal server error", Status: status}
	default:
		return &Error{Kind: KindUnknownHTTP, Message: "unexpected status " + strconv.Itoa(status), Status: status}
	}
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates the operator and returns the session token,
// already normalized to the bearer scheme. The caller stores it.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/admin/login",
		body:   credentialsRequest{Email: email, Password: password},
		login:  true,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", &Error{Kind: KindInvalidResponse, Message: "failed to decode login response", Cause: err}
	}

	tok := extractToken(resp.Header, body)
	if tok == "" {
		return "", &Error{Kind: KindInvalidResponse, Message: "login response carried no token"}
	}
	return NormalizeBearer(tok), nil
}

// RegisterAdmin creates a new administrator account. This is an
// authenticated admin operation, not self-service signup; nothing from
// the response is stored.
func (c *Client) RegisterAdmin(ctx context.Context, email, password string) error {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodPost,
		path:   "/admin/register",
		body:   credentialsRequest{Email: email, Password: password},
		auth:   true,
	})
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// =============================================================================
// USER OPERATIONS
// =============================================================================

// ListUsers fetches the full user collection.
func (c *Client) ListUsers(ctx context.Context) ([]UserRecord, error) {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodGet,
		path:   "/admin/users_info",
		auth:   true,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var users []UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, &Error{Kind: KindInvalidResponse, Message: "failed to decode user list", Cause: err}
	}
	return users, nil
}

// SetBlocked sets a user's lock state.
func (c *Client) SetBlocked(ctx context.Context, userID string, blocked bool) error {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodPatch,
		path:   "/admin/block/" + userID,
		body:   blockRequest{ToBlock: strconv.FormatBool(blocked)},
		auth:   true,
	})
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// ChangeRole sets a user's role to student or teacher.
func (c *Client) ChangeRole(ctx context.Context, userID string, role Role) error {
	resp, err := c.do(ctx, requestSpec{
		method: http.MethodPatch,
		path:   "/admin/change_role/" + userID,
		body:   roleRequest{Rol: string(role.Normalize())},
		auth:   true,
	})
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// =============================================================================
// TOKEN EXTRACTION
// =============================================================================

// bodyTokenFields is the fixed priority order for token-bearing body
// fields. The backend's response contract is undocumented; this
// preserves the search order the original front-end shipped with.
var bodyTokenFields = []string{"token", "accessToken", "access_token", "authToken", "jwt"}

// extractToken finds the session token in a login response. Priority:
// the Authorization header (Header.Get folds both observed casings),
// then the body fields in order, then the nested data.token and
// user.token locations. First non-empty candidate wins.
func extractToken(hdr http.Header, body map[string]any) string {
	if v := hdr.Get("Authorization"); v != "" {
		return v
	}

	for _, field := range bodyTokenFields {
		if s, ok := body[field].(string); ok && s != "" {
			return s
		}
	}

	if data, ok := body["data"].(map[string]any); ok {
		if s, ok := data["token"].(string); ok && s != "" {
			return s
		}
	}
	if user, ok := body["user"].(map[string]any); ok {
		if s, ok := user["token"].(string); ok && s != "" {
			return s
		}
	}

	return ""
}

// drainAndClose discards an unread response body so the connection can
// be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}
