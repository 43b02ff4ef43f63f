// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/newsdesk-go/internal/cache"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
)

// HealthHandler serves the unauthenticated health endpoint. The
// response deliberately carries no backend URLs or error details.
type HealthHandler struct {
	db        *sql.DB
	api       *newsapi.Client
	cache     cache.Cache
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, api *newsapi.Client, c cache.Cache) *HealthHandler {
	return &HealthHandler{
		db:        db,
		api:       api,
		cache:     c,
		startTime: time.Now(),
	}
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status string           `json:"status"`
	Uptime string           `json:"uptime"`
	Checks map[string]Check `json:"checks"`
}

// Check is a single health check result.
type Check struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /healthz. The console stays up when the backend
// is down (operators still need the event log), so a failing backend
// check degrades the status but keeps the response at 200. Only a
// broken local database makes the instance unhealthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbCheck := h.checkDatabase(ctx)
	backendCheck := h.checkBackend(ctx)
	cacheCheck := h.checkCache(ctx)

	status := "healthy"
	code := http.StatusOK
	switch {
	case dbCheck.Status != "healthy":
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	case backendCheck.Status != "healthy" || cacheCheck.Status != "healthy":
		status = "degraded"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(HealthStatus{
		Status: status,
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
		Checks: map[string]Check{
			"database": dbCheck,
			"backend":  backendCheck,
			"cache":    cacheCheck,
		},
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) Check {
	start := time.Now()
	if err := h.db.PingContext(ctx); err != nil {
		return Check{Status: "unhealthy", Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

func (h *HealthHandler) checkBackend(ctx context.Context) Check {
	start := time.Now()
	if err := h.api.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}

// checkCache pings Redis-backed caches; the in-memory cache has no
// failure mode worth probing.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	redisCache, ok := h.cache.(*cache.RedisCache)
	if !ok {
		return Check{Status: "healthy"}
	}
	start := time.Now()
	if err := redisCache.Ping(ctx); err != nil {
		return Check{Status: "unhealthy", Latency: time.Since(start).String()}
	}
	return Check{Status: "healthy", Latency: time.Since(start).String()}
}
