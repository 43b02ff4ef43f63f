// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// AIArticle is a normalized AI/ML-section article. Generated content is
// produced by the backend; the console only lists, creates and edits it.
type AIArticle struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Trending    bool       `json:"trending"`
	Score       float64    `json:"score"`
	SourceURL   string     `json:"sourceUrl,omitempty"`
	AuthorName  string     `json:"authorName"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
