// Package api is the typed client for the storefront backend REST API.
//
// The backend is the source of truth for orders and users; this package only
// calls it and decodes what comes back. Authenticated endpoints require a
// bearer credential from the configured store; when the store is empty the
// call fails before any network I/O. Non-2xx responses, transport failures
// and undecodable bodies are all plain errors so callers never mutate local
// state without a confirmed success.
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

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/shopora/admin_console/internal/credential"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config configures the backend client.
type Config struct {
	// BaseURL is the backend root, e.g. https://backend.example.com.
	BaseURL string
	// Credentials supplies the bearer token for authenticated endpoints.
	Credentials credential.Store
	// HTTPClient overrides the default client. When nil, a client with a
	// conservative timeout is used.
	HTTPClient *http.Client
	// Limiter, when set, paces outgoing requests. It never re-issues one.
	Limiter *rate.Limiter
	// Logger receives per-request debug and error events.
	Logger zerolog.Logger
}

// Client executes JSON requests against the backend.
type Client struct {
	baseURL    string
	creds      credential.Store
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// New validates cfg and returns a client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: BaseURL scheme must be http or https")
	}
	if parsed.User != nil {
		return nil, fmt.Errorf("api: BaseURL must not include user info")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("api: Credentials store is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	if httpClient.Timeout == 0 {
		httpClient.Timeout = defaultTimeout
	}

	return &Client{
		baseURL:    baseURL,
		creds:      cfg.Credentials,
		httpClient: httpClient,
		limiter:    cfg.Limiter,
		log:        cfg.Logger,
	}, nil
}

// Orders returns the orders endpoint group.
func (c *Client) Orders() *OrdersService { return &OrdersService{client: c} }

// Users returns the users endpoint group.
func (c *Client) Users() *UsersService { return &UsersService{client: c} }

// Auth returns the unauthenticated session endpoints.
func (c *Client) Auth() *AuthService { return &AuthService{client: c} }

// do executes one backend call. When authed is set, the bearer token is
// resolved first and its absence aborts the call before anything reaches the
// network. out may be nil when the response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, authed bool) error {
	var bearer string
	if authed {
		cred, ok, err := c.creds.Load()
		if err != nil {
			return fmt.Errorf("api: load credential: %w", err)
		}
		if !ok {
			return ErrNoCredential
		}
		bearer = cred.Token
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("api: rate limiter: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Str("request_id", requestID).Str("method", method).Str("path", path).Err(err).Msg("backend request failed")
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		c.log.Error().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Dur("elapsed", time.Since(started)).
			Msg("backend rejected request")
		return serr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &DecodeError{Endpoint: path, Err: err}
		}
	}

	c.log.Debug().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("backend request completed")
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any, authed bool) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, authed)
}

func (c *Client) post(ctx context.Context, path string, body, out any, authed bool) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, authed)
}

func (c *Client) put(ctx context.Context, path string, body, out any, authed bool) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, authed)
}

func (c *Client) delete(ctx context.Context, path string, authed bool) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, authed)
}
