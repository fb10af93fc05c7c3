// Package client talks to a running taskrank HTTP server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/aristath/taskrank/internal/analysis"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("taskrank server: %d %s: %v", e.Status, e.Code, e.Details)
	}
	return fmt.Sprintf("taskrank server: %d %s", e.Status, e.Code)
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetry replaces the retry policy.
func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// WithBreakers shares a circuit breaker registry between clients.
func WithBreakers(r *BreakerRegistry) Option {
	return func(c *Client) { c.breakers = r }
}

// WithLogger sets the logger used for breaker state changes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// Client calls the analyze and suggest endpoints with retry and circuit
// breaking. It is safe for concurrent use.
type Client struct {
	baseURL  string
	host     string
	http     *http.Client
	retry    RetryConfig
	breakers *BreakerRegistry
	logger   *slog.Logger
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("server url %q must include scheme and host", baseURL)
	}

	c := &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		host:    u.Host,
		http:    &http.Client{Timeout: 30 * time.Second},
		retry:   DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breakers == nil {
		c.breakers = NewBreakerRegistry(c.logger)
	}
	return c, nil
}

// Analyze submits a payload and returns the server's report.
func (c *Client) Analyze(ctx context.Context, p analysis.Payload) (*analysis.Report, error) {
	var resp struct {
		Results analysis.Report `json:"results"`
	}
	if err := c.post(ctx, "/api/tasks/analyze", p, &resp); err != nil {
		return nil, err
	}
	return &resp.Results, nil
}

// Suggest returns the top n suggestions for a payload. n <= 0 lets the
// server pick its default.
func (c *Client) Suggest(ctx context.Context, p analysis.Payload, n int) ([]analysis.Suggestion, error) {
	path := "/api/tasks/suggest"
	if n > 0 {
		path += "?top_n=" + strconv.Itoa(n)
	}

	var resp struct {
		Results []analysis.Suggestion `json:"results"`
	}
	if err := c.post(ctx, path, p, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Health checks that the server is up.
func (c *Client) Health(ctx context.Context) error {
	_, err := withRetry(ctx, c.breaker(), c.retry, func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
		if err != nil {
			return struct{}{}, err
		}
		return struct{}{}, c.do(req, nil)
	})
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	_, err = withRetry(ctx, c.breaker(), c.retry, func(ctx context.Context) (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
		if err != nil {
			return struct{}{}, err
		}
		req.Header.Set("Content-Type", "application/json")
		return struct{}{}, c.do(req, out)
	})
	return err
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(body, apiErr); jsonErr != nil || apiErr.Code == "" {
			apiErr.Code = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) breaker() *gobreaker.CircuitBreaker {
	return c.breakers.Get(c.host)
}
