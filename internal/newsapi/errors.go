// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The HTTP client clears the session exactly once per expiry burst; see
// Client.SessionExpiredOnce.
var ErrUnauthorized = errors.New("newsapi: unauthorized")

// ErrNotFound is returned for 404 responses on detail endpoints.
var ErrNotFound = errors.New("newsapi: not found")

// AuthError reports a failed login: bad credentials or a response with
// no access token in any recognized shape. The message is safe to show
// inline on the login form.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("newsapi: auth failed: %s", e.Message)
}

// TransportError reports a network or server failure on a data fetch.
// Pages recover from it by rendering the empty state and a notice.
type TransportError struct {
	Status  int    // HTTP status, 0 for network-level failures
	Message string // backend message when one was usable
	Err     error  // underlying error, may be nil
}

func (e *TransportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("newsapi: upstream returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("newsapi: request failed: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Notice returns a user-presentable message for the failure.
func (e *TransportError) Notice() string {
	if e.Status >= 500 {
		return "The server is having trouble right now. Please try again."
	}
	if e.Message != "" {
		return e.Message
	}
	return "Couldn't reach the server. Please try again."
}
