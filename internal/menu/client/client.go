package client

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

	"github.com/beanboard/menu-service/internal/menu"
	"github.com/tidwall/gjson"
)

// ErrNetwork marks failures where no HTTP response was received.
var ErrNetwork = errors.New("menu api unreachable")

// APIError is a non-2xx response from the menu API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("menu api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("menu api: status %d: %s", e.StatusCode, e.Message)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// Client talks to the menu API over HTTP.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("menu client: base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("menu client: invalid base URL: %w", err)
	}
	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) List(ctx context.Context) ([]menu.MenuItem, error) {
	var items []menu.MenuItem
	if err := c.do(ctx, http.MethodGet, nil, &items, "api", "menu"); err != nil {
		return nil, err
	}
	if items == nil {
		items = []menu.MenuItem{}
	}
	return items, nil
}

// Create posts a new item and returns it with the id assigned by the API.
func (c *Client) Create(ctx context.Context, item menu.MenuItem) (menu.MenuItem, error) {
	item.ID = ""
	var created menu.MenuItem
	if err := c.do(ctx, http.MethodPost, item, &created, "api", "menu"); err != nil {
		return menu.MenuItem{}, err
	}
	return created, nil
}

func (c *Client) Update(ctx context.Context, id string, p menu.Patch) error {
	return c.do(ctx, http.MethodPut, p, nil, "api", "menu", id)
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, nil, nil, "api", "menu", id)
}

// do sends one request to the base URL joined with path. A path prefix in the
// base URL is kept.
func (c *Client) do(ctx context.Context, method string, in, out interface{}, path ...string) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("menu client: encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path...).String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("menu client: decode response: %w", err)
	}
	return nil
}

// errorMessage pulls "error" out of a JSON error body, falling back to the raw text.
func errorMessage(body []byte) string {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Exists() {
			return msg.String()
		}
	}
	return strings.TrimSpace(string(body))
}
