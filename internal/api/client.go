// package api implements the authenticated HTTP gateway to the dashboard backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/nkurelo/socialdash/internal/shared"
)

// IdentityPath is the canonical "who am I" endpoint. A 401 here means the
// session is gone and triggers global teardown; a 401 anywhere else is an
// ordinary per-feature failure so optional features can never log the
// user out.
const IdentityPath = "/auth/me"

// TokenSource supplies the current bearer token, or "" when the session
// relies on cookie authentication.
type TokenSource interface {
	Token() string
}

// Error is a non-2xx backend response.
type Error struct {
	StatusCode int
	Status     string
	Path       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API error: %s", e.Status)
}

// IsUnauthorized reports whether the failure was a 401.
func (e *Error) IsUnauthorized() bool { return e.StatusCode == http.StatusUnauthorized }

// Client performs authenticated JSON requests against a fixed backend origin.
//
// When a bearer token is held it is attached to every request; otherwise the
// cookie jar carries ambient session cookies. The two auth modes are mutually
// exclusive per session but the client does not enforce that, it simply
// prefers the explicit token when present.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *log.Logger

	// onSessionExpired fires on a 401 from IdentityPath.
	onSessionExpired func()
	// onConnectivityLoss fires at most once per client lifetime when the
	// backend is unreachable; the error is still returned to the caller.
	onConnectivityLoss func()
	connectivityOnce   sync.Once
}

// Opts configures a [Client].
type Opts struct {
	BaseURL            string
	HTTPClient         *http.Client
	Tokens             TokenSource
	Logger             *log.Logger
	OnSessionExpired   func()
	OnConnectivityLoss func()
}

// NewClient creates a gateway for the given backend origin.
func NewClient(opts Opts) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "http://localhost:8080"
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.HTTPClient.Jar == nil {
		// Cookie-mode sessions need the jar to carry the backend cookie
		jar, err := cookiejar.New(nil)
		if err == nil {
			opts.HTTPClient.Jar = jar
		}
	}

	return &Client{
		baseURL:            opts.BaseURL,
		httpClient:         opts.HTTPClient,
		tokens:             opts.Tokens,
		limiter:            rate.NewLimiter(rate.Limit(10), 20),
		logger:             opts.Logger,
		onSessionExpired:   opts.OnSessionExpired,
		onConnectivityLoss: opts.OnConnectivityLoss,
	}
}

// BaseURL returns the backend origin the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Token returns the currently held bearer token, or "".
func (c *Client) Token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// Call performs a JSON request and decodes the response into out (skipped
// when out is nil). Body is marshaled as JSON when non-nil.
func (c *Client) Call(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	return c.do(ctx, method, path, "application/json", reader, out)
}

// do performs the request with auth and error normalization. contentType
// applies to the request body; callers with multipart payloads pass their
// own boundary-bearing type.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	if token := c.Token(); token != "" {
		// Explicit token wins over ambient cookies
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
		c.logger.Debug("calling backend with bearer token", "path", path)
	} else {
		c.logger.Debug("calling backend with cookie auth", "path", path)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.connectivityOnce.Do(func() {
			c.logger.Error("backend unreachable", "path", path, "error", err)
			if c.onConnectivityLoss != nil {
				c.onConnectivityLoss()
			}
		})
		return fmt.Errorf("%w: %v", shared.ErrConnectivity, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if path == IdentityPath {
			c.logger.Warn("identity check returned 401, tearing down session")
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return fmt.Errorf("%w: %s", shared.ErrSessionExpired, resp.Status)
		}
		c.logger.Warn("non-critical endpoint returned 401, continuing", "path", path)
		return &Error{StatusCode: resp.StatusCode, Status: resp.Status, Path: path}
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		c.logger.Warn("backend unavailable", "path", path)
		return fmt.Errorf("%w: %s", shared.ErrServiceUnavailable, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("backend returned error", "path", path, "status", resp.Status)
		return &Error{StatusCode: resp.StatusCode, Status: resp.Status, Path: path}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
