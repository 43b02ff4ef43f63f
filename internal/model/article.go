// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Article statuses as used by the backend workflow.
const (
	ArticleStatusDraft     = "DRAFT"
	ArticleStatusPending   = "PENDING"
	ArticleStatusPublished = "PUBLISHED"
	ArticleStatusRejected  = "REJECTED"
)

// Article is a normalized news article record.
type Article struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Status      string     `json:"status"`
	AuthorID    int64      `json:"authorId"`
	AuthorName  string     `json:"authorName"`
	CategoryID  int64      `json:"categoryId"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	ViewCount   int        `json:"viewCount"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Author returns the author name with the documented fallback.
func (a *Article) Author() string {
	if a.AuthorName == "" {
		return "Unknown"
	}
	return a.AuthorName
}

// PublishedDate returns the publish date formatted for display,
// or "N/A" when the article has not been published.
func (a *Article) PublishedDate() string {
	if a.PublishedAt == nil {
		return "N/A"
	}
	return a.PublishedAt.Format("2006-01-02")
}
