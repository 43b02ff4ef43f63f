// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Event levels used by the diagnostics log.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event is a single diagnostics log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IPAddress string
	Metadata  string
	CreatedAt time.Time
}

// CreateEventParams holds the fields for a new event entry.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	IPAddress string
	Metadata  string
}

// Queries wraps the local database handle.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance for the given database.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// CreateEvent inserts a diagnostics event and returns it with its ID.
func (q *Queries) CreateEvent(ctx context.Context, params CreateEventParams) (Event, error) {
	if params.Category == "" {
		params.Category = "system"
	}
	if params.Metadata == "" {
		params.Metadata = "{}"
	}
	now := time.Now().UTC()

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO events (level, category, message, user_id, ip_address, metadata, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		params.Level, params.Category, params.Message, params.UserID,
		params.IPAddress, params.Metadata, now)
	if err != nil {
		return Event{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Event{}, err
	}

	return Event{
		ID:        id,
		Level:     params.Level,
		Category:  params.Category,
		Message:   params.Message,
		UserID:    params.UserID,
		IPAddress: params.IPAddress,
		Metadata:  params.Metadata,
		CreatedAt: now,
	}, nil
}

// ListEvents returns events newest-first, filtered by level when level
// is non-empty.
func (q *Queries) ListEvents(ctx context.Context, level string, limit, offset int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, level, category, message, user_id, ip_address, metadata, created_at
	          FROM events`
	args := []any{}
	if level != "" {
		query += ` WHERE level = ?`
		args = append(args, level)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message,
			&e.UserID, &e.IPAddress, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountEvents returns the total number of events, filtered by level
// when level is non-empty.
func (q *Queries) CountEvents(ctx context.Context, level string) (int, error) {
	query := `SELECT COUNT(*) FROM events`
	args := []any{}
	if level != "" {
		query += ` WHERE level = ?`
		args = append(args, level)
	}

	var count int
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// DeleteOldEvents removes events older than the given age. Returns the
// number of rows deleted.
func (q *Queries) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
