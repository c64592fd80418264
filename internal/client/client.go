// Package client is the UI's wrapper around the transaction API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"moneytracker/internal/core"
	applog "moneytracker/internal/log"
	"moneytracker/internal/middleware/trace"
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *applog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *applog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithComponent(applog.ComponentClient)
		}
	}
}

// New returns a client for the API rooted at baseURL (".../api").
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentClient),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTransactions fetches every stored transaction. A null body decodes to
// an empty list.
func (c *Client) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	var list []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/transaction", nil, &list); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	if list == nil {
		list = []core.Transaction{}
	}
	return list, nil
}

// CreateTransaction posts the payload and returns the stored record.
func (c *Client) CreateTransaction(ctx context.Context, nt core.NewTransaction) (core.Transaction, error) {
	var t core.Transaction
	if err := c.do(ctx, http.MethodPost, "/transaction", nt, &t); err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return t, nil
}

// Test calls the API's liveness probe and returns its body text.
func (c *Client) Test(ctx context.Context) (string, error) {
	var out struct {
		Body string `json:"body"`
	}
	if err := c.do(ctx, http.MethodGet, "/test", nil, &out); err != nil {
		return "", fmt.Errorf("test: %w", err)
	}
	return out.Body, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if id := trace.GetRequestID(ctx); id != "" {
		req.Header.Set(trace.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "API call completed",
		applog.FieldMethod, method,
		applog.FieldPath, path,
		applog.FieldStatusCode, resp.StatusCode,
		applog.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var env struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &env) == nil && env.Error != "" {
		apiErr.Message = env.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}
