// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
)

// Durable session keys: written together on login, removed together on
// logout or expiry.
const (
	keyToken = "auth_token"
	keyUser  = "auth_user"
)

// Store is the single owner of authentication state. All reads go
// through Current/Token; all writes go through Login, Logout and
// UpdateProfile.
type Store struct {
	sm  *scs.SessionManager
	api *newsapi.Client
}

// NewStore creates the session store. Call BindAPI before use.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// BindAPI attaches the backend client. Separate from NewStore because
// the client needs the store as its token source first.
func (s *Store) BindAPI(api *newsapi.Client) {
	s.api = api
}

// Current restores the session for this request: both the token and a
// parseable user record must be present. Anything less (missing half,
// corrupt JSON, an expired JWT) clears the session and reports
// unauthenticated; it never fails the request.
func (s *Store) Current(ctx context.Context) (*model.User, bool) {
	token := s.sm.GetString(ctx, keyToken)
	rawUser := s.sm.GetString(ctx, keyUser)

	if token == "" || rawUser == "" {
		if token != "" || rawUser != "" {
			s.Clear(ctx)
		}
		return nil, false
	}

	var user model.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		slog.Warn("stored session user is corrupt, clearing session", "category", "auth")
		s.Clear(ctx)
		return nil, false
	}
	user.Role = model.ParseRole(string(user.Role))

	if tokenExpired(token) {
		slog.Info("stored token expired, clearing session", "category", "auth")
		s.Clear(ctx)
		return nil, false
	}

	return &user, true
}

// Token implements newsapi.TokenSource. It returns "" unless the
// session is fully authenticated.
func (s *Store) Token(ctx context.Context) string {
	token := s.sm.GetString(ctx, keyToken)
	if token == "" || s.sm.GetString(ctx, keyUser) == "" {
		return ""
	}
	return token
}

// Login authenticates against the backend and persists the session.
// Token and user are written in one session commit, so readers observe
// either both or neither. The session token is renewed to prevent
// fixation, and the client's expiry guard is re-armed.
func (s *Store) Login(ctx context.Context, creds newsapi.Credentials) (*model.User, error) {
	user, token, err := s.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}

	if err := s.sm.RenewToken(ctx); err != nil {
		return nil, err
	}
	s.sm.Put(ctx, keyToken, token)
	s.sm.Put(ctx, keyUser, string(rawUser))

	s.api.ResetExpiredGuard()
	return user, nil
}

// Logout tells the backend to drop the token, then clears local state.
// The remote call is best effort: local state is cleared even when the
// network call fails, so no stale credentials survive.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		slog.Debug("remote logout failed, clearing local session anyway", "error", err)
	}
	s.Clear(ctx)
}

// Clear removes both durable keys and destroys the session. Used by
// Logout and by the 401 expiry path.
func (s *Store) Clear(ctx context.Context) {
	s.sm.Remove(ctx, keyToken)
	s.sm.Remove(ctx, keyUser)
	if err := s.sm.Destroy(ctx); err != nil {
		slog.Warn("destroying session failed", "category", "auth", "error", err)
	}
}

// UpdateProfile pushes the change to the backend, then merges it into
// the stored user record. The token is untouched.
func (s *Store) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.User, error) {
	if err := s.api.UpdateProfile(ctx, update); err != nil {
		return nil, err
	}

	user, ok := s.Current(ctx)
	if !ok {
		return nil, newsapi.ErrUnauthorized
	}
	update.Apply(user)

	rawUser, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	s.sm.Put(ctx, keyUser, string(rawUser))
	return user, nil
}

// tokenExpired checks a JWT exp claim without verifying the signature;
// verification is the backend's job, this is only a local pre-check so
// a known-dead token does not render a flash of the dashboard. Opaque
// (non-JWT) tokens are accepted as-is.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
