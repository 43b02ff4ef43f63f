// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that forwards WARN and ERROR
// records to the local diagnostics event log. Shape mismatches, denied
// access and session expiry all surface there without ever becoming
// user-visible errors.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/middleware"
	"github.com/olegiv/newsdesk-go/internal/store"
)

// EventLogHandler wraps another slog.Handler and also writes records at
// or above its threshold to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler creates a handler forwarding WARN+ to the event log.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeToEventLog(ctx, r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

func (h *EventLogHandler) writeToEventLog(ctx context.Context, r slog.Record) {
	// Background context so the record survives request cancellation.
	_, _ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:    levelToEventLevel(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
		Metadata: extractMetadata(ctx, r),
	})
}

func levelToEventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return store.EventLevelError
	case level >= slog.LevelWarn:
		return store.EventLevelWarning
	default:
		return store.EventLevelInfo
	}
}

// extractCategory reads an explicit "category" attribute, falling back
// to inference from the message.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") ||
		strings.Contains(msg, "logout") || strings.Contains(msg, "session"):
		return "auth"
	case strings.Contains(msg, "shape") || strings.Contains(msg, "normaliz"):
		return "normalizer"
	case strings.Contains(msg, "access denied") || strings.Contains(msg, "forbidden"):
		return "rbac"
	case strings.Contains(msg, "cache"):
		return "cache"
	default:
		return "system"
	}
}

// extractMetadata collects remaining attributes into a JSON object,
// plus the request path when the record was logged inside a request.
func extractMetadata(ctx context.Context, r slog.Record) string {
	attrs := make(map[string]any, r.NumAttrs()+1)
	if path := middleware.GetRequestPath(ctx); path != "" {
		attrs["path"] = path
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	if len(attrs) == 0 {
		return "{}"
	}

	data, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(data)
}
