// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// authedContext returns a context with an authenticated scs session.
func authedContext(t *testing.T, sm *scs.SessionManager, user model.User) context.Context {
	t.Helper()

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshaling user: %v", err)
	}
	sm.Put(ctx, "auth_token", "tok")
	sm.Put(ctx, "auth_user", string(raw))
	return ctx
}

func TestAuthRedirectsAnonymous(t *testing.T) {
	sm := scs.New()
	sessions := session.NewStore(sm)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles/new", nil).WithContext(ctx)
	Auth(sessions)(okHandler()).ServeHTTP(rec, r)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?next=/articles/new" {
		t.Errorf("Location = %q", loc)
	}
}

func TestAuthPassesAuthenticated(t *testing.T) {
	sm := scs.New()
	sessions := session.NewStore(sm)
	ctx := authedContext(t, sm, model.User{ID: 1, Email: "e@x.com", Role: model.RoleEditor})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles", nil).WithContext(ctx)
	Auth(sessions)(okHandler()).ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestLoadUserPopulatesContext(t *testing.T) {
	sm := scs.New()
	sessions := session.NewStore(sm)
	ctx := authedContext(t, sm, model.User{ID: 42, Email: "ed@x.com", Role: model.RoleAdManager})

	var got *model.User
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	LoadUser(sessions)(inner).ServeHTTP(httptest.NewRecorder(), r)

	if got == nil {
		t.Fatal("user not loaded into context")
	}
	if got.ID != 42 || got.Role != model.RoleAdManager {
		t.Errorf("user = %+v", got)
	}
}

func TestLoadUserAnonymousPassesThrough(t *testing.T) {
	sm := scs.New()
	sessions := session.NewStore(sm)

	ctx, err := sm.Load(context.Background(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}

	called := false
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if GetUser(r) != nil {
			t.Error("anonymous request should have no user in context")
		}
	})

	r := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	LoadUser(sessions)(inner).ServeHTTP(httptest.NewRecorder(), r)

	if !called {
		t.Error("next handler not called")
	}
}

func TestGetUserHelpers(t *testing.T) {
	r := requestWithUser(model.RoleEditor)
	if GetUserID(r) != 7 {
		t.Errorf("GetUserID = %d", GetUserID(r))
	}
	if GetUserEmail(r) != "u@x.com" {
		t.Errorf("GetUserEmail = %q", GetUserEmail(r))
	}
	if GetUserRole(r) != model.RoleEditor {
		t.Errorf("GetUserRole = %q", GetUserRole(r))
	}

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetUser(anon) != nil || GetUserID(anon) != 0 || GetUserRole(anon) != model.RoleUnknown {
		t.Error("helpers must return zero values without a user")
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	})

	r := httptest.NewRequest(http.MethodGet, "/ads/3/edit", nil)
	RequestPath(inner).ServeHTTP(httptest.NewRecorder(), r)

	if got != "/ads/3/edit" {
		t.Errorf("path = %q", got)
	}
}
