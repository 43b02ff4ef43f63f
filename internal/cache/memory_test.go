// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "v" {
		t.Errorf("value = %q", got)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, err := c.Get(context.Background(), "absent")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expired entry: error = %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("deleted key still present")
	}
	if _, err := c.Get(ctx, "b"); err != nil {
		t.Errorf("unrelated key removed: %v", err)
	}
}

func TestMemoryCacheValueIsolation(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	original := []byte("hello")
	_ = c.Set(ctx, "k", original, 0)
	original[0] = 'X'

	got, _ := c.Get(ctx, "k")
	if string(got) != "hello" {
		t.Errorf("stored value mutated: %q", got)
	}

	got[0] = 'Y'
	again, _ := c.Get(ctx, "k")
	if string(again) != "hello" {
		t.Errorf("returned value not a copy: %q", again)
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	_ = c.Close()

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("error = %v, want ErrCacheClosed", err)
	}
	if err := c.Set(context.Background(), "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("error = %v, want ErrCacheClosed", err)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute, MaxSize: 2})
	t.Cleanup(func() { _ = c.Close() })
	ctx := context.Background()

	_ = c.Set(ctx, "a", []byte("1"), time.Millisecond)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	time.Sleep(5 * time.Millisecond)

	// At capacity with one expired entry; the write reclaims it.
	if err := c.Set(ctx, "c", []byte("3"), 0); err != nil {
		t.Fatalf("Set at capacity: %v", err)
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Error("expired entry survived eviction")
	}
	if _, err := c.Get(ctx, "c"); err != nil {
		t.Errorf("new entry missing after eviction: %v", err)
	}
}
