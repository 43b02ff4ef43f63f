// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/middleware"
	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// UsersHandler handles operator account management. All routes are
// admin-only; the role gate sits in the router.
type UsersHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *UsersHandler {
	return &UsersHandler{api: api, renderer: renderer, sessions: sessions}
}

type userListData struct {
	Users      []model.User
	Pagination AdminPagination
}

type userFormData struct {
	User   *model.User
	Roles  []model.Role
	IsEdit bool
}

// List renders the operator account list.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.ListUsers(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := userListData{
		Users:      list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteUsers, url.Values{}),
	}
	if err := h.renderer.Render(w, r, "admin/users", render.TemplateData{
		Title: "Users",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering user list", "error", err)
	}
}

// New renders the empty account form.
func (h *UsersHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/user_form", render.TemplateData{
		Title: "New User",
		Data:  userFormData{Roles: model.AnyRole.Roles()},
	}); err != nil {
		logAndInternalError(w, "rendering user form", "error", err)
	}
}

// Create handles account form submission.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteUsers+RouteSuffixNew) {
		return
	}

	input, msg := userInputFromForm(r, false)
	if msg != "" {
		flashError(w, r, h.renderer, RouteUsers+RouteSuffixNew, msg)
		return
	}

	if err := h.api.CreateUser(r.Context(), input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteUsers+RouteSuffixNew, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectUsers, "User created.")
}

// Edit renders the edit form for one account.
func (h *UsersHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectUsers, "User not found.")
		return
	}

	user, err := h.api.GetUser(r.Context(), id)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteUsers, err)
		return
	}
	if user == nil {
		flashError(w, r, h.renderer, redirectUsers, "User not found.")
		return
	}

	if err := h.renderer.Render(w, r, "admin/user_form", render.TemplateData{
		Title: "Edit User",
		Data:  userFormData{User: user, Roles: model.AnyRole.Roles(), IsEdit: true},
	}); err != nil {
		logAndInternalError(w, "rendering user form", "error", err)
	}
}

// Update handles edit form submission. The password field is optional
// on edit; an empty value leaves the current password untouched.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectUsers, "User not found.")
		return
	}
	formURL := fmt.Sprintf("/users/%d/edit", id)
	if !parseFormOrRedirect(w, r, h.renderer, formURL) {
		return
	}

	input, msg := userInputFromForm(r, true)
	if msg != "" {
		flashError(w, r, h.renderer, formURL, msg)
		return
	}

	if err := h.api.UpdateUser(r.Context(), id, input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, formURL, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectUsers, "User updated.")
}

// Delete removes an account. Admins cannot delete themselves; losing
// the last admin would lock everyone out of this console.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectUsers, "User not found.")
		return
	}
	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, redirectUsers, "You cannot delete your own account.")
		return
	}
	if err := h.api.DeleteUser(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteUsers, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectUsers, "User deleted.")
}

// ToggleActive flips an account's active flag.
func (h *UsersHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectUsers, "User not found.")
		return
	}
	if id == middleware.GetUserID(r) {
		flashError(w, r, h.renderer, redirectUsers, "You cannot deactivate your own account.")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectUsers) {
		return
	}
	active := formBool(r, "active")
	if err := h.api.SetUserActive(r.Context(), id, active); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteUsers, err)
		return
	}
	msg := "User deactivated."
	if active {
		msg = "User activated."
	}
	flashSuccess(w, r, h.renderer, redirectUsers, msg)
}

func userInputFromForm(r *http.Request, isEdit bool) (newsapi.UserInput, string) {
	input := newsapi.UserInput{
		Email:    strings.TrimSpace(r.FormValue("email")),
		FullName: strings.TrimSpace(r.FormValue("full_name")),
		Role:     model.ParseRole(r.FormValue("role")),
		IsActive: formBool(r, "is_active"),
		Password: r.FormValue("password"),
	}
	switch {
	case input.Email == "":
		return input, "Email is required."
	case input.Role == model.RoleUnknown:
		return input, "Please pick a valid role."
	case !isEdit && input.Password == "":
		return input, "Password is required."
	case input.Password != "" && len(input.Password) < 8:
		return input, "Password must be at least 8 characters."
	}
	return input, ""
}
