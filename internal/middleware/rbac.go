// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// RequireRoles creates middleware that allows only users whose role is
// in the given set. Roles are not hierarchical: a route open to editors
// is not implicitly open to admins unless the set says so. Requests
// without a loaded user are redirected to login; authenticated users
// outside the set get a 403 page and a diagnostics event.
func RequireRoles(allowed model.RoleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			if !allowed.Contains(user.Role) {
				slog.Warn("access denied",
					"category", "rbac",
					"status", http.StatusForbidden,
					"method", r.Method,
					"user_id", user.ID,
					"user_role", string(user.Role),
				)
				renderAccessDenied(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for RequireRoles(model.AdminsOnly).
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRoles(model.AdminsOnly)
}

const accessDeniedPage = `<!DOCTYPE html>
<html lang="en">
<head><meta charset="utf-8"><title>Access Denied</title></head>
<body>
<h1>Access Denied</h1>
<p>Your account does not have permission to view this page.</p>
<p><a href="/">Back to dashboard</a></p>
</body>
</html>`

func renderAccessDenied(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(accessDeniedPage))
}
