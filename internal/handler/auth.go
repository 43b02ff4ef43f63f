// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/newsdesk-go/internal/middleware"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// AuthHandler handles authentication routes.
type AuthHandler struct {
	sessions        *session.Store
	api             *newsapi.Client
	renderer        *render.Renderer
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Store, api *newsapi.Client, renderer *render.Renderer, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		sessions:        sessions,
		api:             api,
		renderer:        renderer,
		loginProtection: lp,
	}
}

// loginFormData is the view model for the login page.
type loginFormData struct {
	Email string
	Next  string
}

// LoginForm renders the login page.
// Already-authenticated users are sent to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r.Context()); ok {
		http.Redirect(w, r, redirectDashboard, http.StatusSeeOther)
		return
	}

	data := loginFormData{Next: sanitizeNext(r.URL.Query().Get("next"))}
	if err := h.renderer.Render(w, r, "auth/login", render.TemplateData{
		Title: "Sign In",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	next := sanitizeNext(r.FormValue("next"))

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			slog.Warn("login attempt on locked account", "category", "auth", "email", email)
			flashError(w, r, h.renderer, redirectLogin,
				"Account temporarily locked. Try again in "+formatDuration(remaining)+".")
			return
		}
	}

	user, err := h.sessions.Login(r.Context(), newsapi.Credentials{Email: email, Password: password})
	if err != nil {
		h.failedLogin(w, r, email, err)
		return
	}

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email, "role", string(user.Role))
	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	h.renderer.SetFlash(r, "Welcome back, "+user.DisplayName(), "success")
	target := redirectDashboard
	if next != "" {
		target = next
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// failedLogin records the failure and picks the user-facing message.
// Backend validation messages are shown as-is; transport failures get
// the generic notice. Only rejected credentials count toward lockout;
// a backend outage is not the caller's fault and must not lock the
// account or masquerade as a bad password.
func (h *AuthHandler) failedLogin(w http.ResponseWriter, r *http.Request, email string, err error) {
	slog.Warn("login failed", "category", "auth", "email", email, "error", err)

	var authErr *newsapi.AuthError
	if errors.As(err, &authErr) {
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				flashError(w, r, h.renderer, redirectLogin,
					"Too many failed attempts. Account locked for "+formatDuration(lockDuration)+".")
				return
			}
			if remaining := h.loginProtection.GetRemainingAttempts(email); remaining <= 3 && remaining > 0 {
				flashError(w, r, h.renderer, redirectLogin,
					fmt.Sprintf("Invalid email or password. %d attempts remaining.", remaining))
				return
			}
		}
		flashError(w, r, h.renderer, redirectLogin, authErr.Message)
		return
	}

	var transportErr *newsapi.TransportError
	if errors.As(err, &transportErr) {
		flashError(w, r, h.renderer, redirectLogin, transportErr.Notice())
		return
	}

	flashError(w, r, h.renderer, redirectLogin, "Login failed. Please try again.")
}

// Logout signs the user out locally and notifies the backend on a
// best-effort basis.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	h.sessions.Logout(r.Context())

	slog.Info("user logged out", "user_id", userID)
	flashAndRedirect(w, r, h.renderer, redirectLogin, "You have been signed out.", "info")
}

// sanitizeNext keeps post-login redirects on-site. Anything that is
// not a local absolute path is dropped.
func sanitizeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
