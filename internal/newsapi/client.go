// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package newsapi is the client for the publishing platform's REST
// backend. It owns two concerns: the HTTP transport (bearer injection,
// central status handling, the single-shot session-expiry guard) and
// the response normalizer that reduces the backend's inconsistent
// envelope shapes to the canonical model.List form.
package newsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// TokenSource supplies the current bearer token, or "" when the
// session holds none. The session store is the only implementation.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenSourceFunc adapts a function to the TokenSource interface.
type TokenSourceFunc func(ctx context.Context) string

// Token implements TokenSource.
func (f TokenSourceFunc) Token(ctx context.Context) string { return f(ctx) }

// Client talks to the publishing backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	// expiredGuard suppresses duplicate session-expired handling when
	// several in-flight requests fail with 401 at once. Reset on login.
	expiredGuard atomic.Bool
}

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Tokens  TokenSource

	// HTTPClient overrides the default client, used by tests.
	HTTPClient *http.Client
}

// New creates a Client for the given backend.
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		tokens:  opts.Tokens,
	}
}

// SessionExpiredOnce reports whether this call is the first to observe
// an expired session since the last reset. Exactly one caller in a
// burst of concurrent 401 failures gets true; the rest are suppressed.
func (c *Client) SessionExpiredOnce() bool {
	return c.expiredGuard.CompareAndSwap(false, true)
}

// ResetExpiredGuard re-arms the session-expiry guard. Called after a
// successful login.
func (c *Client) ResetExpiredGuard() {
	c.expiredGuard.Store(false)
}

// requestOptions carries per-request flags.
type requestOptions struct {
	// silent suppresses the backend message for 4xx responses, used by
	// polling endpoints whose failures should not produce notices.
	silent bool
	// noAuth skips bearer injection (login endpoint).
	noAuth bool
	// idempotencyKey is attached as X-Idempotency-Key when non-empty.
	idempotencyKey string
}

// RequestOption mutates requestOptions.
type RequestOption func(*requestOptions)

// Silent suppresses user-facing messages for client-error responses.
func Silent() RequestOption {
	return func(o *requestOptions) { o.silent = true }
}

// WithoutAuth skips bearer token injection.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.noAuth = true }
}

// WithIdempotencyKey attaches a client-generated idempotency key so a
// retried create does not produce duplicates.
func WithIdempotencyKey() RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = uuid.NewString() }
}

// do issues a request and applies the central status policy:
// 401 clears the session path via ErrUnauthorized, 5xx and network
// failures become TransportError, other 4xx surface the backend's
// message unless the request is silent. A 2xx returns the raw body for
// the normalizer.
func (c *Client) do(ctx context.Context, method, path string, payload any, opts ...RequestOption) ([]byte, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", ro.idempotencyKey)
	}
	if !ro.noAuth && c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Message: "network failure", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, &TransportError{Status: resp.StatusCode, Message: "reading response", Err: err}
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return raw, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 500:
		slog.Error("upstream server error", "category", "transport",
			"method", method, "path", path, "status", resp.StatusCode)
		return nil, &TransportError{Status: resp.StatusCode, Message: backendMessage(raw)}
	default:
		msg := ""
		if !ro.silent {
			msg = backendMessage(raw)
		}
		return nil, &TransportError{Status: resp.StatusCode, Message: msg}
	}
}

// get issues a GET request.
func (c *Client) get(ctx context.Context, path string, opts ...RequestOption) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts...)
}

// Ping probes backend reachability for health checks. Any HTTP
// response counts as reachable, even an error status; only a
// network-level failure is reported.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/health", WithoutAuth(), Silent())
	var transport *TransportError
	if errors.As(err, &transport) && transport.Status == 0 {
		return transport
	}
	return nil
}

// backendMessage digs a human-readable message out of an error body.
// The backend is no more consistent about error shapes than about data
// shapes: the message may live at .message, .error or .data.message.
func backendMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return ""
	}
	switch {
	case envelope.Message != "":
		return envelope.Message
	case envelope.Error != "":
		return envelope.Error
	case envelope.Data.Message != "":
		return envelope.Data.Message
	}
	return ""
}
