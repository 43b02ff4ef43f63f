// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/store"
)

// EventsPerPage is the number of events to display per page.
const EventsPerPage = 25

// EventsHandler serves the local diagnostics event log. Events are
// written by the logging handler into the console's own SQLite
// database; nothing here touches the publishing backend.
type EventsHandler struct {
	queries  *store.Queries
	renderer *render.Renderer
}

// NewEventsHandler creates a new EventsHandler.
func NewEventsHandler(db *sql.DB, renderer *render.Renderer) *EventsHandler {
	return &EventsHandler{queries: store.New(db), renderer: renderer}
}

// EventRow is one rendered event log entry.
type EventRow struct {
	ID          int64
	Level       string
	Category    string
	Message     string
	Details     string
	DetailsLong bool
	CreatedAt   string
}

// detailsLengthThreshold is the max chars before details are collapsible.
const detailsLengthThreshold = 80

// formatMetadata converts JSON metadata to readable text.
// Example: {"path":"/articles","error":"timeout"} -> "error: timeout, path: /articles"
func formatMetadata(metadata string) string {
	if metadata == "" || metadata == "{}" {
		return ""
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(metadata), &data); err != nil {
		return metadata
	}
	if len(data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var parts []string
	for _, key := range keys {
		var strValue string
		switch v := data[key].(type) {
		case string:
			strValue = v
		case float64:
			strValue = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			strValue = strconv.FormatBool(v)
		default:
			if b, err := json.Marshal(v); err == nil {
				strValue = string(b)
			}
		}
		parts = append(parts, key+": "+strValue)
	}
	return strings.Join(parts, ", ")
}

// eventsListData holds data for the events template.
type eventsListData struct {
	Events      []EventRow
	TotalEvents int
	Level       string
	Levels      []string
	Pagination  AdminPagination
}

// List renders the paginated event log with an optional level filter.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	page := pageParam(r)

	total, err := h.queries.CountEvents(r.Context(), level)
	if err != nil {
		logAndInternalError(w, "counting events", "error", err)
		return
	}

	totalPages := (total + EventsPerPage - 1) / EventsPerPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := h.queries.ListEvents(r.Context(), level, EventsPerPage, (page-1)*EventsPerPage)
	if err != nil {
		logAndInternalError(w, "listing events", "error", err)
		return
	}

	events := make([]EventRow, len(rows))
	for i, row := range rows {
		details := formatMetadata(row.Metadata)
		events[i] = EventRow{
			ID:          row.ID,
			Level:       row.Level,
			Category:    row.Category,
			Message:     row.Message,
			Details:     details,
			DetailsLong: len(details) > detailsLengthThreshold,
			CreatedAt:   row.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}

	params := url.Values{}
	if level != "" {
		params.Set("level", level)
	}

	data := eventsListData{
		Events:      events,
		TotalEvents: total,
		Level:       level,
		Levels:      []string{store.EventLevelInfo, store.EventLevelWarning, store.EventLevelError},
		Pagination: BuildAdminPagination(model.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		}, RouteEvents, params),
	}
	if err := h.renderer.Render(w, r, "admin/events", render.TemplateData{
		Title: "Event Log",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering event log", "error", err)
	}
}
