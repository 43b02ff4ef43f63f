// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package nav

import (
	"testing"

	"github.com/olegiv/newsdesk-go/internal/model"
)

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func contains(entries []Entry, name string) bool {
	for _, e := range entries {
		if e.Name == name {
			return true
		}
	}
	return false
}

func TestVisiblePerRole(t *testing.T) {
	tests := []struct {
		role    model.Role
		want    []string
		notWant []string
	}{
		{
			role:    model.RoleAdmin,
			want:    []string{"Dashboard", "Articles", "Pending Approval", "Users", "Event Log"},
			notWant: []string{"AI Tools"},
		},
		{
			role:    model.RoleEditor,
			want:    []string{"Dashboard", "Articles", "Categories", "AI Tools", "Profile"},
			notWant: []string{"Pending Approval", "Advertisements", "Users", "Event Log", "Analytics"},
		},
		{
			role:    model.RoleAdManager,
			want:    []string{"Dashboard", "Articles", "Advertisements", "AI Tools", "Analytics"},
			notWant: []string{"Users", "Event Log"},
		},
		{
			role:    model.RoleUser,
			want:    []string{"Dashboard", "Profile"},
			notWant: []string{"Articles", "Categories", "Advertisements", "AI Tools", "Users"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			visible := Visible(tt.role)
			for _, name := range tt.want {
				if !contains(visible, name) {
					t.Errorf("%s should see %q, got %v", tt.role, name, names(visible))
				}
			}
			for _, name := range tt.notWant {
				if contains(visible, name) {
					t.Errorf("%s should not see %q", tt.role, name)
				}
			}
		})
	}
}

func TestVisibleUnknownRoleSeesNothing(t *testing.T) {
	if visible := Visible(model.RoleUnknown); len(visible) != 0 {
		t.Errorf("unknown role sees %v", names(visible))
	}
}

func TestVisiblePreservesOrder(t *testing.T) {
	visible := Visible(model.RoleAdmin)
	if len(visible) < 2 || visible[0].Name != "Dashboard" {
		t.Errorf("first entry = %v", names(visible))
	}
}

func TestVisibleFiltersChildren(t *testing.T) {
	visible := Visible(model.RoleEditor)
	for _, e := range visible {
		if e.Name != "AI Tools" {
			continue
		}
		if len(e.Children) != 3 {
			t.Errorf("AI Tools children = %d, want 3", len(e.Children))
		}
		return
	}
	t.Fatal("AI Tools not visible to editor")
}

func TestIsActive(t *testing.T) {
	tests := []struct {
		entryPath string
		reqPath   string
		want      bool
	}{
		{"/articles", "/articles", true},
		{"/articles", "/articles/42/edit", true},
		{"/articles", "/articles-archive", false},
		{"/articles", "/ads", false},
		{"/", "/", true},
		{"/", "/articles", false},
		{"/ai", "/ai/trending", true},
	}

	for _, tt := range tests {
		e := Entry{Path: tt.entryPath}
		if got := e.IsActive(tt.reqPath); got != tt.want {
			t.Errorf("IsActive(%q) on %q = %v, want %v", tt.reqPath, tt.entryPath, got, tt.want)
		}
	}
}
