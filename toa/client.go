// Package toa is a typed client for The Orange Alliance API, the public
// First Tech Challenge competition data service.
//
// Each Client method issues one GET request and returns either a typed record
// or exactly one of *TransportError, *APIStatusError or *DeserializationError.
// The client keeps no mutable state, never retries and never caches, so a
// single instance can be shared across goroutines.
package toa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/toa-client/internal/logging"
)

// Observer receives one callback per completed request. statusCode is zero
// when no response was received.
type Observer interface {
	ObserveRequest(endpoint string, statusCode int, duration time.Duration, err error)
}

// Config controls how the client reaches the TOA API.
type Config struct {
	APIKey string
	// BaseURL overrides the production endpoint, e.g. for a mock server.
	BaseURL           string
	ApplicationOrigin string
	// HTTPClient defaults to a client with a 10s timeout.
	HTTPClient *http.Client
	Logger     *slog.Logger
	Observer   Observer
}

// Client fetches TOA resources and decodes them into typed records.
type Client struct {
	baseURL    string
	apiKey     string
	origin     string
	httpClient httpDoer
	logger     *slog.Logger
	observer   Observer
	now        func() time.Time
	requestID  func() string
}

// New constructs a client for the production API with the given key.
func New(apiKey string) *Client {
	return NewClient(Config{APIKey: apiKey})
}

// NewClient constructs a client from cfg. No network activity happens here.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		origin:     resolveOrigin(cfg.ApplicationOrigin),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		logger:     cfg.Logger,
		observer:   cfg.Observer,
		now:        time.Now,
		requestID:  uuid.NewString,
	}
}

// BaseURL returns the normalized base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func getJSON[T any](ctx context.Context, c *Client, req request) (T, error) {
	return getChecked[T](ctx, c, req, nil)
}

// getChecked decodes into T and runs check on the result before the request
// is reported. A check failure becomes a DeserializationError.
func getChecked[T any](ctx context.Context, c *Client, req request, check func(T) error) (T, error) {
	var out T
	var validate func() error
	if check != nil {
		validate = func() error { return check(out) }
	}
	if err := c.get(ctx, req, &out, validate); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// getFirst decodes an array response and returns its first element; TOA wraps
// single resources in a one-element array.
func getFirst[T any](ctx context.Context, c *Client, req request) (T, error) {
	var zero T
	items, err := getChecked(ctx, c, req, nonEmpty[T])
	if err != nil {
		return zero, err
	}
	return items[0], nil
}

func nonEmpty[T any](items []T) error {
	if len(items) == 0 {
		return ErrEmptyResponse
	}
	return nil
}

func (c *Client) get(ctx context.Context, req request, dest any, validate func() error) error {
	start := c.now()
	reqID := c.requestID()
	status, err := c.fetch(ctx, req, dest, validate)
	duration := c.now().Sub(start)

	if c.observer != nil {
		c.observer.ObserveRequest(req.endpoint, status, duration, err)
	}

	logger := logging.FromContext(ctx, c.logger)
	if logger == nil {
		return err
	}
	attrs := []any{
		slog.String(logging.FieldRequestID, reqID),
		slog.String(logging.FieldEndpoint, req.endpoint),
		slog.String(logging.FieldPath, req.path),
		slog.Int(logging.FieldStatusCode, status),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	}
	if err != nil {
		logger.Debug("toa request failed", append(attrs, "error", err)...)
		return err
	}
	logger.Debug("toa request complete", attrs...)
	return nil
}

func (c *Client) fetch(ctx context.Context, req request, dest any, validate func() error) (int, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return 0, &TransportError{Method: http.MethodGet, URL: c.baseURL + req.path, Endpoint: req.endpoint, Err: err}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, &TransportError{Method: httpReq.Method, URL: httpReq.URL.String(), Endpoint: req.endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, newAPIStatusError(resp, req.endpoint, c.now())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return resp.StatusCode, &TransportError{
			Method:   httpReq.Method,
			URL:      httpReq.URL.String(),
			Endpoint: req.endpoint,
			Err:      fmt.Errorf("read body: %w", err),
		}
	}
	if len(body) > maxBodyBytes {
		return resp.StatusCode, &DeserializationError{
			Endpoint: req.endpoint,
			Body:     snippet(body),
			Err:      fmt.Errorf("response exceeds %d bytes", maxBodyBytes),
		}
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return resp.StatusCode, &DeserializationError{Endpoint: req.endpoint, Body: snippet(body), Err: err}
	}
	if validate != nil {
		if err := validate(); err != nil {
			return resp.StatusCode, &DeserializationError{Endpoint: req.endpoint, Body: snippet(body), Err: err}
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) buildRequest(ctx context.Context, req request) (*http.Request, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+req.path, nil)
	if err != nil {
		return nil, err
	}
	if len(req.query) > 0 {
		httpReq.URL.RawQuery = req.query.Encode()
	}

	httpReq.Header.Set(HeaderAPIKey, c.apiKey)
	httpReq.Header.Set(HeaderApplicationOrigin, c.origin)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	return httpReq, nil
}
