// Package salesapi is the data-access client for the sales order REST API.
// Each operation performs exactly one HTTP request and returns the decoded
// response body or an error. There is no caching and no retry.
package salesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// Endpoint paths relative to the configured base URL.
const (
	PathGetData            = "getData"
	PathGetDistinctProduct = "getDistinctProduct"
	PathAddRecord          = "addRecord"
	PathUpdateRecord       = "updateRecord"
	PathDeleteRecord       = "deleteRecord"
	PathSearchData         = "searchData"
)

// Service is the set of data-access operations. *Client implements it.
type Service interface {
	ListOrders(ctx context.Context) ([]SalesOrderRow, error)
	ListProducts(ctx context.Context) ([]ProductOption, error)
	InsertOrder(ctx context.Context, in InsertOrderInput) (*Message, error)
	UpdateOrder(ctx context.Context, in UpdateOrderInput) (*Message, error)
	DeleteOrder(ctx context.Context, in DeleteOrderInput) (*Message, error)
	SearchOrders(ctx context.Context, page PageRequest) (*OrderPage, error)
}

// Client is immutable after construction and safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client from cfg, or from the defaults when cfg is nil.
// cfg is copied and finalized without env overrides, so an unfinalized base URL
// still gains its trailing slash and is validated before use.
func New(cfg *Config, opts ...Option) (*Client, error) {
	var resolved Config
	if cfg != nil {
		resolved = *cfg
	}
	if err := resolved.Finalize(nil); err != nil {
		return nil, fmt.Errorf("client config: %w", err)
	}

	base, err := url.Parse(resolved.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	c := &Client{
		base:   base,
		http:   &http.Client{Timeout: resolved.TimeoutDuration()},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("client", "salesapi")

	return c, nil
}

// BaseURL returns the resolved API root.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// ListOrders returns every row of the sales order listing.
func (c *Client) ListOrders(ctx context.Context) ([]SalesOrderRow, error) {
	var rows []SalesOrderRow
	if err := c.do(ctx, http.MethodGet, PathGetData, nil, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListProducts returns the distinct products available to order forms.
func (c *Client) ListProducts(ctx context.Context) ([]ProductOption, error) {
	var products []ProductOption
	if err := c.do(ctx, http.MethodGet, PathGetDistinctProduct, nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// InsertOrder creates a sales order.
func (c *Client) InsertOrder(ctx context.Context, in InsertOrderInput) (*Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return c.write(ctx, PathAddRecord, in)
}

// UpdateOrder updates the sales order identified by in.ObjectID.
func (c *Client) UpdateOrder(ctx context.Context, in UpdateOrderInput) (*Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return c.write(ctx, PathUpdateRecord, in)
}

// DeleteOrder deletes the sales order identified by in.ObjectID.
func (c *Client) DeleteOrder(ctx context.Context, in DeleteOrderInput) (*Message, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return c.write(ctx, PathDeleteRecord, in)
}

// SearchOrders returns one page of the listing filtered by page.
func (c *Client) SearchOrders(ctx context.Context, page PageRequest) (*OrderPage, error) {
	var result OrderPage
	if err := c.do(ctx, http.MethodGet, PathSearchData, page.Query(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) write(ctx context.Context, path string, body any) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, path, nil, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.base.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       respBody,
		}
	}

	if err := decodeJSON(respBody, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeJSON(data []byte, out any) error {
	return json.Unmarshal(data, out)
}
