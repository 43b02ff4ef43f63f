// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session owns authentication state: who is logged in and with
// which bearer token. State is persisted in the local SQLite database
// through scs so a console restart or browser reload does not log
// operators out. Two keys are written together on login and removed
// together on logout or expiry; a session holding only one of them is
// treated as corrupt and cleared.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// NewManager creates the scs session manager backed by the local
// SQLite store.
func NewManager(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev

	return sm
}
