// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// TimeSaverHandler handles the Time Saver digest section.
type TimeSaverHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewTimeSaverHandler creates a new TimeSaverHandler.
func NewTimeSaverHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *TimeSaverHandler {
	return &TimeSaverHandler{api: api, renderer: renderer, sessions: sessions}
}

type timeSaverListData struct {
	Items      []model.TimeSaverItem
	Pagination AdminPagination
}

// List renders the Time Saver item list.
func (h *TimeSaverHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.ListTimeSaver(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := timeSaverListData{
		Items:      list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteAITimeSavers, url.Values{}),
	}
	if err := h.renderer.Render(w, r, "admin/timesavers", render.TemplateData{
		Title: "Time Savers",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering time saver list", "error", err)
	}
}

// New renders the empty Time Saver form.
func (h *TimeSaverHandler) New(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "admin/timesaver_form", render.TemplateData{
		Title: "New Time Saver",
	}); err != nil {
		logAndInternalError(w, "rendering time saver form", "error", err)
	}
}

// Create handles Time Saver form submission.
func (h *TimeSaverHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAITimeSavers+RouteSuffixNew) {
		return
	}

	input := newsapi.TimeSaverInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Digest:      strings.TrimSpace(r.FormValue("digest")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		ReadSeconds: int(formInt64(r, "read_seconds")),
		ImageURL:    strings.TrimSpace(r.FormValue("image_url")),
		SourceID:    formInt64(r, "source_id"),
		Tags:        newsapi.ParseTags(r.FormValue("tags")),
	}
	switch {
	case input.Title == "":
		flashError(w, r, h.renderer, RouteAITimeSavers+RouteSuffixNew, "Title is required.")
		return
	case input.Digest == "":
		flashError(w, r, h.renderer, RouteAITimeSavers+RouteSuffixNew, "Digest is required.")
		return
	}

	if err := h.api.CreateTimeSaverItem(r.Context(), input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAITimeSavers+RouteSuffixNew, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAITimeSavers, "Time Saver created.")
}

// Delete removes a Time Saver item.
func (h *TimeSaverHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAITimeSavers, "Item not found.")
		return
	}
	if err := h.api.DeleteTimeSaverItem(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAITimeSavers, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAITimeSavers, "Time Saver deleted.")
}
