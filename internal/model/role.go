// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models shared across the application:
// users and roles, publishing resources (articles, categories,
// advertisements, AI/ML articles, Time Saver items) and the canonical
// list envelope every normalized backend response is reduced to.
package model

// Role is the closed set of operator roles. Authorization decisions are
// made exclusively against this type; an unrecognized role string parses
// to RoleUnknown, which is a member of no allow-list.
type Role string

// Operator roles, matching the backend's role field verbatim.
const (
	RoleAdmin     Role = "ADMIN"
	RoleAdManager Role = "AD_MANAGER"
	RoleEditor    Role = "EDITOR"
	RoleUser      Role = "USER"

	// RoleUnknown is returned by ParseRole for any unrecognized value.
	// It never appears in an allow-list, so unknown roles get no access.
	RoleUnknown Role = ""
)

// ParseRole maps a raw role string onto the closed Role set.
// Unknown values map to RoleUnknown rather than failing.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleAdManager, RoleEditor, RoleUser:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAdManager || r == RoleEditor || r == RoleUser
}

// RoleSet is an allow-list of roles attached to a route or navigation entry.
type RoleSet map[Role]struct{}

// NewRoleSet builds a RoleSet from the given roles.
func NewRoleSet(roles ...Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, r := range roles {
		set[r] = struct{}{}
	}
	return set
}

// Contains reports whether role is a member of the set.
// Membership is a pure function of (role, set); RoleUnknown is never a member.
func (s RoleSet) Contains(role Role) bool {
	if role == RoleUnknown {
		return false
	}
	_, ok := s[role]
	return ok
}

// Roles returns the members in a stable display order.
func (s RoleSet) Roles() []Role {
	ordered := []Role{RoleAdmin, RoleAdManager, RoleEditor, RoleUser}
	var out []Role
	for _, r := range ordered {
		if _, ok := s[r]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Common allow-lists used by the route table and navigation model.
// AI/ML and Time Saver creation deliberately exclude ADMIN: admins are
// view-only for those two sections.
var (
	AnyRole        = NewRoleSet(RoleAdmin, RoleAdManager, RoleEditor, RoleUser)
	ContentWriters = NewRoleSet(RoleAdmin, RoleAdManager, RoleEditor)
	Approvers      = NewRoleSet(RoleAdmin, RoleAdManager)
	AdminsOnly     = NewRoleSet(RoleAdmin)
	AICreators     = NewRoleSet(RoleAdManager, RoleEditor)
)
