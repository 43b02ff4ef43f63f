// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"ADMIN", RoleAdmin},
		{"AD_MANAGER", RoleAdManager},
		{"EDITOR", RoleEditor},
		{"USER", RoleUser},
		{"admin", RoleUnknown},
		{"SUPERADMIN", RoleUnknown},
		{"", RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseRole(tt.in); got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoleSetContains(t *testing.T) {
	set := NewRoleSet(RoleEditor, RoleAdManager)

	tests := []struct {
		role Role
		want bool
	}{
		{RoleEditor, true},
		{RoleAdManager, true},
		{RoleAdmin, false},
		{RoleUser, false},
		{RoleUnknown, false},
		{Role("EDITOR "), false},
	}

	for _, tt := range tests {
		if got := set.Contains(tt.role); got != tt.want {
			t.Errorf("Contains(%q) = %v, want %v", tt.role, got, tt.want)
		}
	}

	// Repeated evaluation must not depend on prior calls.
	for i := 0; i < 3; i++ {
		if !set.Contains(RoleEditor) {
			t.Fatal("Contains(EDITOR) changed across calls")
		}
		if set.Contains(RoleAdmin) {
			t.Fatal("Contains(ADMIN) changed across calls")
		}
	}
}

func TestAICreatorsExcludesAdmin(t *testing.T) {
	// Admins are view-only for AI/ML and Time Saver creation.
	if AICreators.Contains(RoleAdmin) {
		t.Error("AICreators must not include ADMIN")
	}
	if !AICreators.Contains(RoleEditor) || !AICreators.Contains(RoleAdManager) {
		t.Error("AICreators must include EDITOR and AD_MANAGER")
	}
}

func TestRoleSetRolesOrder(t *testing.T) {
	set := NewRoleSet(RoleUser, RoleAdmin, RoleEditor)
	got := set.Roles()
	want := []Role{RoleAdmin, RoleEditor, RoleUser}
	if len(got) != len(want) {
		t.Fatalf("Roles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Roles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
