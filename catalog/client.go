package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// maxResponseSize limits response bodies to guard against a misbehaving
// service.
const maxResponseSize = 4 * 1024 * 1024 // 4MB

// Client issues product operations against the remote catalog service.
// It holds no state beyond its connection settings: no caching, no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Products lists all catalog entries.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single catalog entry by ID.
func (c *Client) Product(ctx context.Context, id int) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, &p); err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// CreateProduct creates a new catalog entry from a draft and returns the
// created product with its server-assigned ID.
func (c *Client) CreateProduct(ctx context.Context, draft Draft) (*Product, error) {
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("invalid draft: %w", err)
	}

	var p Product
	if err := c.do(ctx, http.MethodPost, "/products", draft, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies a partial update to an existing catalog entry and
// returns the updated product.
func (c *Client) UpdateProduct(ctx context.Context, id int, patch Patch) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodPut, productPath(id), patch, &p); err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

// DeleteProduct removes a catalog entry.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return mapNotFound(c.do(ctx, http.MethodDelete, productPath(id), nil, nil))
}

func productPath(id int) string {
	return "/products/" + strconv.Itoa(id)
}

// mapNotFound turns a 404 into ErrNotFound for id-scoped requests. A 404
// from the collection endpoint stays an APIError; the service has no
// product routes to miss there.
func mapNotFound(err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return err
}

// do executes a single request against the service. A non-nil body is
// JSON-encoded; a non-nil out receives the decoded response.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	requestID := uuid.New().String()

	reqURL, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build request URL: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Catalog request",
		"request_id", requestID,
		"method", method,
		"url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("Catalog request failed",
			"request_id", requestID,
			"error", err)
		return NewTransportError(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return NewTransportError(fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("Catalog request rejected",
			"request_id", requestID,
			"status", resp.StatusCode)
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(respBody), 200),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}
