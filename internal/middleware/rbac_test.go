// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// requestWithUser builds a GET request carrying the given user in context.
func requestWithUser(role model.Role) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/articles", nil)
	user := &model.User{ID: 7, Email: "u@x.com", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireRolesMembership(t *testing.T) {
	tests := []struct {
		name       string
		allowed    model.RoleSet
		role       model.Role
		wantStatus int
	}{
		{"editor on content route", model.ContentWriters, model.RoleEditor, http.StatusOK},
		{"admin on content route", model.ContentWriters, model.RoleAdmin, http.StatusOK},
		{"ad manager on content route", model.ContentWriters, model.RoleAdManager, http.StatusOK},
		{"plain user on content route", model.ContentWriters, model.RoleUser, http.StatusForbidden},
		{"editor on admin route", model.AdminsOnly, model.RoleEditor, http.StatusForbidden},
		{"admin on admin route", model.AdminsOnly, model.RoleAdmin, http.StatusOK},
		{"unknown role denied everywhere", model.AnyRole, model.RoleUnknown, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RequireRoles(tt.allowed)(okHandler()).ServeHTTP(rec, requestWithUser(tt.role))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

// Role sets are exact membership, not a hierarchy: the AI tools are
// scoped to editors and ad managers, and an admin is still denied.
func TestRequireRolesNoHierarchy(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRoles(model.AICreators)(okHandler()).ServeHTTP(rec, requestWithUser(model.RoleAdmin))

	if rec.Code != http.StatusForbidden {
		t.Errorf("admin on AI route: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	rec = httptest.NewRecorder()
	RequireRoles(model.AICreators)(okHandler()).ServeHTTP(rec, requestWithUser(model.RoleEditor))
	if rec.Code != http.StatusOK {
		t.Errorf("editor on AI route: status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireRolesDeniedPage(t *testing.T) {
	rec := httptest.NewRecorder()
	RequireRoles(model.AdminsOnly)(okHandler()).ServeHTTP(rec, requestWithUser(model.RoleUser))

	if !strings.Contains(rec.Body.String(), "Access Denied") {
		t.Error("403 response should render the access denied page")
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestRequireRolesRedirectsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/articles", nil)
	RequireRoles(model.AnyRole)(okHandler()).ServeHTTP(rec, r)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q", loc)
	}
}
