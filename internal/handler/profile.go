// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/middleware"
	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// ProfileHandler lets the signed-in operator edit their own profile.
type ProfileHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *ProfileHandler {
	return &ProfileHandler{api: api, renderer: renderer, sessions: sessions}
}

type profileData struct {
	User *model.User
}

// Show renders the profile form.
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "admin/profile", render.TemplateData{
		Title: "Profile",
		Data:  profileData{User: user},
	}); err != nil {
		logAndInternalError(w, "rendering profile", "error", err)
	}
}

// Update handles profile form submission. Only submitted fields reach
// the backend; the session copy of the user is refreshed in place so
// the header shows the new name without a re-login.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteProfile) {
		return
	}

	var update model.ProfileUpdate
	if _, ok := r.PostForm["full_name"]; ok {
		name := strings.TrimSpace(r.FormValue("full_name"))
		if name == "" {
			flashError(w, r, h.renderer, redirectProfile, "Name cannot be empty.")
			return
		}
		update.FullName = &name
	}
	if _, ok := r.PostForm["profile_picture"]; ok {
		picture := strings.TrimSpace(r.FormValue("profile_picture"))
		update.ProfilePicture = &picture
	}
	if update.FullName == nil && update.ProfilePicture == nil {
		flashError(w, r, h.renderer, redirectProfile, "Nothing to update.")
		return
	}

	if _, err := h.sessions.UpdateProfile(r.Context(), update); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteProfile, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectProfile, "Profile updated.")
}
