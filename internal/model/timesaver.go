// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// TimeSaverItem is a normalized digest card from the Time Saver section.
type TimeSaverItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Digest      string     `json:"digest"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ReadSeconds int        `json:"readSeconds"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	SourceID    int64      `json:"sourceId,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
