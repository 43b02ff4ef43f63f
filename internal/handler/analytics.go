// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"

	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// AnalyticsHandler renders the analytics page for approvers.
type AnalyticsHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *AnalyticsHandler {
	return &AnalyticsHandler{api: api, renderer: renderer, sessions: sessions}
}

type analyticsData struct {
	Stats  newsapi.DashboardStats
	Series []newsapi.SeriesPoint
	Days   int
}

// Show renders the analytics summary and the daily views table.
// The series endpoint is newer than the summary endpoint and fails on
// older backends; that failure degrades to an empty table.
func (h *AnalyticsHandler) Show(w http.ResponseWriter, r *http.Request) {
	days, err := strconv.Atoi(r.URL.Query().Get("days"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}

	stats, err := h.api.GetDashboardStats(r.Context())
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	series, seriesErr := h.api.GetViewsSeries(r.Context(), days)
	if seriesErr != nil {
		series = nil
	}

	data := analyticsData{Stats: stats, Series: series, Days: days}
	if err := h.renderer.Render(w, r, "admin/analytics", render.TemplateData{
		Title: "Analytics",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering analytics", "error", err)
	}
}
