// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// Credentials are the login form fields.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginPayload is the {user, accessToken} pair the login endpoint
// returns, at one of two nesting depths.
type loginPayload struct {
	User        *model.User `json:"user"`
	AccessToken string      `json:"accessToken"`
}

// Login authenticates against the backend and returns the user record
// and bearer token. The payload may arrive nested one level deep
// ({data: {user, accessToken}}) or flat ({user, accessToken}); the
// nested path is checked first. A response without an access token in
// either shape fails with AuthError carrying the backend's message.
func (c *Client) Login(ctx context.Context, creds Credentials) (*model.User, string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", creds, WithoutAuth())
	if err != nil {
		var transport *TransportError
		if errors.As(err, &transport) && transport.Status >= 400 && transport.Status < 500 {
			msg := transport.Message
			if msg == "" {
				msg = "Invalid email or password"
			}
			return nil, "", &AuthError{Message: msg}
		}
		if errors.Is(err, ErrUnauthorized) {
			return nil, "", &AuthError{Message: "Invalid email or password"}
		}
		return nil, "", err
	}

	payload, ok := extractLoginPayload(body)
	if !ok || payload.AccessToken == "" || payload.User == nil {
		msg := backendMessage(body)
		if msg == "" {
			msg = "Login failed: unexpected response from server"
		}
		slog.Warn("login response missing access token", "category", "auth")
		return nil, "", &AuthError{Message: msg}
	}

	user := *payload.User
	user.Role = model.ParseRole(string(user.Role))
	return &user, payload.AccessToken, nil
}

// extractLoginPayload checks the nested shape first, then the flat one.
func extractLoginPayload(body []byte) (loginPayload, bool) {
	root := asObject(body)
	if root == nil {
		return loginPayload{}, false
	}

	candidates := []json.RawMessage{}
	if data, exists := root["data"]; exists {
		if inner := asObject(data); inner != nil {
			if deep, exists := inner["data"]; exists {
				candidates = append(candidates, deep)
			}
			candidates = append(candidates, data)
		}
	}
	candidates = append(candidates, json.RawMessage(body))

	for _, candidate := range candidates {
		var payload loginPayload
		if err := json.Unmarshal(candidate, &payload); err == nil && payload.AccessToken != "" {
			return payload, true
		}
	}
	return loginPayload{}, false
}

// Logout tells the backend to invalidate the token. Best effort: the
// caller clears local state regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, "/auth/logout", nil, Silent())
	return err
}

// UpdateProfile pushes a profile change for the current user.
func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) error {
	_, err := c.do(ctx, http.MethodPut, "/auth/profile", update)
	return err
}
