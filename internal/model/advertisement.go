// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Advertisement statuses. The backend transmits a boolean isActive;
// the normalizer maps it onto this pair and back.
const (
	AdStatusActive = "ACTIVE"
	AdStatusPaused = "PAUSED"
)

// Advertisement is a normalized ad record. Description, Status, Clicks
// and Budget diverge from the wire names (content, isActive, clickCount,
// budget-as-string); the mapping lives in the newsapi normalizer.
type Advertisement struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	TargetURL   string     `json:"targetUrl,omitempty"`
	Clicks      int        `json:"clicks"`
	Impressions int        `json:"impressions"`
	Budget      float64    `json:"budget"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// IsActive reports whether the ad is currently serving.
func (a *Advertisement) IsActive() bool {
	return a.Status == AdStatusActive
}
