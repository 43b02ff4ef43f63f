// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olegiv/newsdesk-go/internal/store"
)

func newTestHandler(t *testing.T) (*EventLogHandler, *store.Queries) {
	t.Helper()

	db, err := store.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewEventLogHandler(inner, db), store.New(db)
}

func TestWarnRecordsForwardedToEventLog(t *testing.T) {
	h, queries := newTestHandler(t)
	logger := slog.New(h)

	logger.Warn("shape mismatch on articles list", "resource", "articles", "page", 2)
	logger.Info("regular request") // below threshold, must not be stored

	events, err := queries.ListEvents(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}

	e := events[0]
	if e.Level != store.EventLevelWarning {
		t.Errorf("Level = %q, want warning", e.Level)
	}
	if e.Category != "normalizer" {
		t.Errorf("Category = %q, want normalizer", e.Category)
	}
	if !strings.Contains(e.Metadata, "articles") {
		t.Errorf("Metadata missing attribute: %q", e.Metadata)
	}
}

func TestExplicitCategoryAttribute(t *testing.T) {
	h, queries := newTestHandler(t)
	logger := slog.New(h)

	logger.Error("upstream unreachable", "category", "transport")

	events, err := queries.ListEvents(context.Background(), "", 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(events))
	}
	if events[0].Category != "transport" {
		t.Errorf("Category = %q, want transport", events[0].Category)
	}
	if events[0].Level != store.EventLevelError {
		t.Errorf("Level = %q, want error", events[0].Level)
	}
}

func TestCategoryInference(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"session expired for user", "auth"},
		{"access denied", "rbac"},
		{"cache refresh failed", "cache"},
		{"something else entirely", "system"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var r slog.Record
			r.Message = tt.message
			if got := extractCategory(r); got != tt.want {
				t.Errorf("extractCategory(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
