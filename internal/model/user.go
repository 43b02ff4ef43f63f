// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// User represents a platform operator as returned by the backend.
type User struct {
	ID             int64      `json:"id"`
	Email          string     `json:"email"`
	FullName       string     `json:"fullName"`
	Role           Role       `json:"role"`
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
}

// DisplayName returns the user's name, falling back to the email
// local part so views never render an empty identity.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Email != "" {
		return u.Email
	}
	return "Unknown"
}

// ProfileUpdate carries the fields an operator may change on their own
// profile. Nil fields are left untouched by the merge.
type ProfileUpdate struct {
	FullName       *string `json:"fullName,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

// Apply merges the update into u, leaving nil fields alone.
func (p ProfileUpdate) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.ProfilePicture != nil {
		u.ProfilePicture = *p.ProfilePicture
	}
}
