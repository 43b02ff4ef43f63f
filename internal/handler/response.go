// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// flashAndRedirect sets a flash message and redirects to the given URL.
// Uses http.StatusSeeOther (303) for POST/PUT/DELETE redirects.
func flashAndRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message, messageType string) {
	renderer.SetFlash(r, message, messageType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func flashError(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "error")
}

// flashSuccess sets a success flash message and redirects to the given URL.
func flashSuccess(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, url, message string) {
	flashAndRedirect(w, r, renderer, url, message, "success")
}

// parseFormOrRedirect parses the request form and redirects with an error message on failure.
// Returns true if parsing succeeded, false if it failed (and redirect was performed).
func parseFormOrRedirect(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		flashError(w, r, renderer, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, logMsg string, args ...any) {
	slog.Error(logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// sessionExpired clears the local session and sends the user to the
// login page. Many requests can fail with 401 at once when a token
// dies; the expired guard makes sure only the first one carries the
// "session expired" flash, the rest redirect silently.
func sessionExpired(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, sessions *session.Store, api *newsapi.Client) {
	sessions.Clear(r.Context())
	if api.SessionExpiredOnce() {
		flashAndRedirect(w, r, renderer, redirectLogin, "Your session has expired. Please sign in again.", "info")
		return
	}
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

// backendFailure is the recovery path for backend errors on form
// submissions and other actions that redirect on success too. An
// expired token goes through sessionExpired; any other failure stays
// on fallbackURL with a notice that never exposes raw backend errors.
//
// Never use this on a GET that would redirect back to itself; pages
// that render a collection recover through backendReadFailure instead.
func backendFailure(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, sessions *session.Store, api *newsapi.Client, fallbackURL string, err error) {
	if errors.Is(err, newsapi.ErrUnauthorized) {
		sessionExpired(w, r, renderer, sessions, api)
		return
	}

	var transportErr *newsapi.TransportError
	if errors.As(err, &transportErr) {
		flashError(w, r, renderer, fallbackURL, transportErr.Notice())
		return
	}

	slog.Error("backend request failed", "error", err, "path", r.URL.Path)
	flashError(w, r, renderer, fallbackURL, "Something went wrong. Please try again.")
}

// backendReadFailure is the recovery path for GET pages. An expired
// token redirects to login and reports true so the caller stops. Any
// other failure sets the notice flash and reports false: the caller
// renders the page with the empty result set the client already
// returned. Redirecting such a page to its own URL would just fail
// again and loop the browser.
func backendReadFailure(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, sessions *session.Store, api *newsapi.Client, err error) bool {
	if errors.Is(err, newsapi.ErrUnauthorized) {
		sessionExpired(w, r, renderer, sessions, api)
		return true
	}

	var transportErr *newsapi.TransportError
	if errors.As(err, &transportErr) {
		renderer.SetFlash(r, transportErr.Notice(), "error")
		return false
	}

	slog.Error("backend request failed", "error", err, "path", r.URL.Path)
	renderer.SetFlash(r, "Something went wrong. Please try again.", "error")
	return false
}
