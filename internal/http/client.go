// Package http implements the Requester collaborator: one HTTP
// exchange in, status code and raw body out. Retries for transient
// failures are handled here by go-retryablehttp; status interpretation
// is left to the resource layer so that list endpoints can treat
// non-success as end-of-sequence.
package http

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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fieldline-io/amocrm-client/internal/auth"
	"github.com/fieldline-io/amocrm-client/pkg/amocrm"
)

const defaultUserAgent = "amocrm-client/1.0"

// Request describes one HTTP exchange.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers map[string]string
}

// Client issues requests against one account endpoint. It is safe for
// concurrent use.
type Client struct {
	baseURL      string
	tokenManager auth.TokenManager
	retryClient  *retryablehttp.Client
	logger       amocrm.Logger
	debug        bool
	userAgent    string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for debug logging.
func WithLogger(logger amocrm.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging through the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithRetryConfig tunes retry count and backoff bounds.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = retryMax
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.retryClient.HTTPClient.Timeout = timeout
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a new HTTP client. tokenManager may be nil for
// unauthenticated use.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		retryClient:  retryClient,
		userAgent:    defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes one request. A non-2xx status is not an error here: the
// response is returned as-is and the caller decides what the status
// means.
func (c *Client) Do(ctx context.Context, req *Request) (*amocrm.Response, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var bodyReader io.Reader

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	return &amocrm.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}, nil
}

// Request implements amocrm.Requester.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (*amocrm.Response, error) {
	return c.Do(ctx, &Request{Method: method, Path: path, Query: query, Body: body})
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*amocrm.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (*amocrm.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (*amocrm.Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}
