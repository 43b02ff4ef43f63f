// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
)

// testStore wires a Store to a fake backend and returns a loaded
// session context plus a counter of backend requests.
func testStore(t *testing.T, handler http.HandlerFunc) (*Store, context.Context, *atomic.Int64) {
	t.Helper()

	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	sm := scs.New()
	store := NewStore(sm)
	store.BindAPI(newsapi.New(newsapi.Options{BaseURL: server.URL, Tokens: store}))

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return store, ctx, &calls
}

func loginOK(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"data":{"user":{"id":1,"email":"ed@x.com","fullName":"Ed","role":"EDITOR"},"accessToken":"tok-1"}}`))
}

func TestLoginPersistsUserAndToken(t *testing.T) {
	store, ctx, _ := testStore(t, loginOK)

	user, err := store.Login(ctx, newsapi.Credentials{Email: "ed@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Role != model.RoleEditor {
		t.Errorf("role = %q", user.Role)
	}

	current, ok := store.Current(ctx)
	if !ok {
		t.Fatal("Current should report authenticated after login")
	}
	if current.Email != "ed@x.com" {
		t.Errorf("email = %q", current.Email)
	}
	if store.Token(ctx) != "tok-1" {
		t.Errorf("Token = %q", store.Token(ctx))
	}
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	store, ctx, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := store.Login(ctx, newsapi.Credentials{})
	var authErr *newsapi.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("error = %v, want AuthError", err)
	}

	if _, ok := store.Current(ctx); ok {
		t.Error("session must stay unauthenticated after failed login")
	}
	if store.Token(ctx) != "" {
		t.Error("no token may be stored after failed login")
	}
}

func TestRestoreRequiresBothKeys(t *testing.T) {
	store, ctx, _ := testStore(t, loginOK)

	// Only half the pair present: treated as corrupt, cleared.
	store.sm.Put(ctx, keyToken, "orphan-token")

	if _, ok := store.Current(ctx); ok {
		t.Fatal("token without user must not authenticate")
	}
	if store.sm.GetString(ctx, keyToken) != "" {
		t.Error("orphan token should have been cleared")
	}
}

func TestRestoreCorruptUserCleared(t *testing.T) {
	store, ctx, _ := testStore(t, loginOK)

	store.sm.Put(ctx, keyToken, "tok")
	store.sm.Put(ctx, keyUser, "{not json")

	if _, ok := store.Current(ctx); ok {
		t.Fatal("corrupt user record must not authenticate")
	}
	if store.sm.GetString(ctx, keyUser) != "" {
		t.Error("corrupt record should have been cleared")
	}
}

func TestRestoreMakesNoNetworkCall(t *testing.T) {
	store, ctx, calls := testStore(t, loginOK)

	store.sm.Put(ctx, keyToken, "abc")
	store.sm.Put(ctx, keyUser, `{"id":1,"role":"EDITOR","email":"e@x.com"}`)

	user, ok := store.Current(ctx)
	if !ok {
		t.Fatal("stored pair should authenticate")
	}
	if user.Role != model.RoleEditor {
		t.Errorf("role = %q", user.Role)
	}
	if calls.Load() != 0 {
		t.Errorf("restore made %d network calls, want 0", calls.Load())
	}
}

func TestRestoreExpiredJWTCleared(t *testing.T) {
	store, ctx, _ := testStore(t, loginOK)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	token, err := expired.SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}

	store.sm.Put(ctx, keyToken, token)
	store.sm.Put(ctx, keyUser, `{"id":1,"role":"ADMIN"}`)

	if _, ok := store.Current(ctx); ok {
		t.Fatal("expired JWT must not authenticate")
	}
}

func TestOpaqueTokenAccepted(t *testing.T) {
	// Tokens that are not JWTs cannot be pre-checked and pass through.
	if tokenExpired("opaque-session-token") {
		t.Error("opaque token treated as expired")
	}
}

func TestLogoutClearsEvenWhenRemoteFails(t *testing.T) {
	store, ctx, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/logout" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		loginOK(w, r)
	})

	if _, err := store.Login(ctx, newsapi.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	store.Logout(ctx)

	if _, ok := store.Current(ctx); ok {
		t.Error("session must be cleared even when remote logout fails")
	}
	if store.Token(ctx) != "" {
		t.Error("token must be cleared after logout")
	}
}

func TestUpdateProfileMergesWithoutTouchingToken(t *testing.T) {
	store, ctx, _ := testStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/profile" {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		loginOK(w, r)
	})

	if _, err := store.Login(ctx, newsapi.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	name := "Edwina"
	user, err := store.UpdateProfile(ctx, model.ProfileUpdate{FullName: &name})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if user.FullName != "Edwina" {
		t.Errorf("FullName = %q", user.FullName)
	}
	if user.Email != "ed@x.com" {
		t.Errorf("unchanged field lost: email = %q", user.Email)
	}
	if store.Token(ctx) != "tok-1" {
		t.Errorf("token changed: %q", store.Token(ctx))
	}

	current, ok := store.Current(ctx)
	if !ok || current.FullName != "Edwina" {
		t.Error("merged profile not persisted")
	}
}
