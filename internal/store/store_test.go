// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func TestMigrateCreatesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"sessions", "events"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %q missing after migration: %v", table, err)
		}
	}
}

func TestCreateAndListEvents(t *testing.T) {
	db := setupTestDB(t)
	queries := New(db)
	ctx := context.Background()

	created, err := queries.CreateEvent(ctx, CreateEventParams{
		Level:   EventLevelWarning,
		Message: "shape mismatch on articles list",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if created.ID == 0 {
		t.Error("expected non-zero event ID")
	}
	if created.Category != "system" {
		t.Errorf("Category = %q, want default %q", created.Category, "system")
	}
	if created.Metadata != "{}" {
		t.Errorf("Metadata = %q, want default {}", created.Metadata)
	}

	_, err = queries.CreateEvent(ctx, CreateEventParams{
		Level:    EventLevelError,
		Category: "auth",
		Message:  "session expired",
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	events, err := queries.ListEvents(ctx, "", 10, 0)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}

	warnings, err := queries.ListEvents(ctx, EventLevelWarning, 10, 0)
	if err != nil {
		t.Fatalf("ListEvents(warning): %v", err)
	}
	if len(warnings) != 1 || warnings[0].Message != "shape mismatch on articles list" {
		t.Errorf("unexpected warning list: %+v", warnings)
	}

	count, err := queries.CountEvents(ctx, "")
	if err != nil {
		t.Fatalf("CountEvents: %v", err)
	}
	if count != 2 {
		t.Errorf("CountEvents = %d, want 2", count)
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	queries := New(db)
	ctx := context.Background()

	if _, err := queries.CreateEvent(ctx, CreateEventParams{
		Level:   EventLevelInfo,
		Message: "fresh",
	}); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	// Backdate one event past the retention cutoff.
	old := time.Now().UTC().Add(-48 * time.Hour)
	if _, err := db.Exec(
		`INSERT INTO events (level, category, message, metadata, created_at) VALUES (?, 'system', 'stale', '{}', ?)`,
		EventLevelInfo, old); err != nil {
		t.Fatalf("insert backdated event: %v", err)
	}

	deleted, err := queries.DeleteOldEvents(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	count, _ := queries.CountEvents(ctx, "")
	if count != 1 {
		t.Errorf("remaining events = %d, want 1", count)
	}
}
