// ABOUTME: HTTP client for the FitForge API with bearer token auth.
// ABOUTME: Decodes JSON responses and maps failures onto the error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitforge/internal/storage"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token. storage.Repository satisfies it.
type TokenSource interface {
	GetToken() (string, error)
}

// AuthPrompter is told when the API rejects the token.
type AuthPrompter interface {
	OpenAuthPrompt()
}

// Client calls the FitForge API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	prompter   AuthPrompter
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets where the bearer token comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithAuthPrompter sets who is told about rejected tokens.
func WithAuthPrompter(p AuthPrompter) Option {
	return func(c *Client) { c.prompter = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends a request. A nil out discards the response body. auth controls
// whether the bearer token is required.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, auth bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if auth {
		token, err := c.token()
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				c.promptAuth()
			}
			return err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.promptAuth()
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Error
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) token() (string, error) {
	if c.tokens == nil {
		return "", ErrUnauthorized
	}
	token, err := c.tokens.GetToken()
	if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

func (c *Client) promptAuth() {
	if c.prompter != nil {
		c.prompter.OpenAuthPrompt()
	}
}
