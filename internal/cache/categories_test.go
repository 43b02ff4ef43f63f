// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/olegiv/newsdesk-go/internal/newsapi"
)

func categoryBackend(t *testing.T, calls *atomic.Int64) *newsapi.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"categories":[{"id":1,"name":"World"},{"id":2,"name":"Tech"}]}}`))
	}))
	t.Cleanup(server.Close)
	return newsapi.New(newsapi.Options{BaseURL: server.URL})
}

func TestCategoryCacheServesFromCache(t *testing.T) {
	var calls atomic.Int64
	cc := NewCategoryCache(newTestCache(t), categoryBackend(t, &calls), time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		categories, err := cc.All(ctx)
		if err != nil {
			t.Fatalf("All: %v", err)
		}
		if len(categories) != 2 || categories[0].Name != "World" {
			t.Errorf("categories = %+v", categories)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("backend hit %d times, want 1", calls.Load())
	}
}

func TestCategoryCacheInvalidate(t *testing.T) {
	var calls atomic.Int64
	cc := NewCategoryCache(newTestCache(t), categoryBackend(t, &calls), time.Minute)
	ctx := context.Background()

	if _, err := cc.All(ctx); err != nil {
		t.Fatalf("All: %v", err)
	}
	cc.Invalidate(ctx)
	if _, err := cc.All(ctx); err != nil {
		t.Fatalf("All after invalidate: %v", err)
	}

	if calls.Load() != 2 {
		t.Errorf("backend hit %d times, want 2", calls.Load())
	}
}

func TestCategoryCacheRefresh(t *testing.T) {
	var calls atomic.Int64
	cc := NewCategoryCache(newTestCache(t), categoryBackend(t, &calls), time.Minute)
	ctx := context.Background()

	if err := cc.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := cc.All(ctx); err != nil {
		t.Fatalf("All: %v", err)
	}

	// Refresh populated the cache, All must not refetch.
	if calls.Load() != 1 {
		t.Errorf("backend hit %d times, want 1", calls.Load())
	}
}
