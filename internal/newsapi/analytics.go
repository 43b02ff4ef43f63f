// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"context"
	"strconv"
)

// DashboardStats is the backend's precomputed analytics summary.
// Missing fields stay zero; the dashboard renders zeros rather than
// failing when the summary is partial.
type DashboardStats struct {
	TotalArticles    int `json:"totalArticles"`
	PendingArticles  int `json:"pendingArticles"`
	PublishedToday   int `json:"publishedToday"`
	TotalUsers       int `json:"totalUsers"`
	ActiveAds        int `json:"activeAds"`
	ViewsToday       int `json:"viewsToday"`
	TotalCategories  int `json:"totalCategories"`
	TrendingAICount  int `json:"trendingAiCount"`
	TimeSaverCount   int `json:"timeSaverCount"`
	ClicksToday      int `json:"clicksToday"`
	ImpressionsToday int `json:"impressionsToday"`
}

// GetDashboardStats fetches the analytics summary. A response with no
// recognizable stats object degrades to all-zeros without error; only
// transport failures are returned.
func (c *Client) GetDashboardStats(ctx context.Context) (DashboardStats, error) {
	body, err := c.get(ctx, "/analytics/summary")
	if err != nil {
		return DashboardStats{}, err
	}
	stats := decodeDetail[DashboardStats](body, "stats")
	if stats == nil {
		return DashboardStats{}, nil
	}
	return *stats, nil
}

// SeriesPoint is one bucket of a time series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// GetViewsSeries fetches the daily view counts for the last N days.
// Used by the analytics page table; chart rendering is out of scope.
func (c *Client) GetViewsSeries(ctx context.Context, days int) ([]SeriesPoint, error) {
	if days <= 0 {
		days = 30
	}
	body, err := c.get(ctx, "/analytics/views?days="+strconv.Itoa(days), Silent())
	if err != nil {
		return nil, err
	}
	return decodeList[SeriesPoint](body, "series", 1).Items, nil
}
