// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// DashboardHandler renders the landing page every role can see.
type DashboardHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *DashboardHandler {
	return &DashboardHandler{api: api, renderer: renderer, sessions: sessions}
}

type dashboardData struct {
	Stats          newsapi.DashboardStats
	RecentArticles []model.Article
}

// Home renders the dashboard. The stats call already degrades to
// zeros on malformed payloads; the recent-articles widget degrades to
// empty on its own failure so one flaky endpoint cannot blank the
// whole landing page. Only an expired session aborts the render.
func (h *DashboardHandler) Home(w http.ResponseWriter, r *http.Request) {
	stats, err := h.api.GetDashboardStats(r.Context())
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	var recent []model.Article
	if list, err := h.api.ListArticles(r.Context(), newsapi.ArticleListParams{Page: 1, PerPage: 5}); err == nil {
		recent = list.Items
	}

	data := dashboardData{Stats: stats, RecentArticles: recent}
	if err := h.renderer.Render(w, r, "admin/dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}
