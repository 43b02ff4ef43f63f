// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
)

const categoriesKey = "categories:all"

// CategoryCache serves the full category list from cache. Categories
// back every article form's dropdown and change rarely, so one backend
// call feeds many page renders. Writes to categories must call
// Invalidate so the next read refetches.
type CategoryCache struct {
	typed *TypedCache[[]model.Category]
	api   *newsapi.Client
}

// NewCategoryCache creates a category cache over the given backend.
func NewCategoryCache(backend Cache, api *newsapi.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		typed: NewTypedCache[[]model.Category](backend, ttl),
		api:   api,
	}
}

// All returns every category, from cache when warm. A cold cache hits
// the backend; backend failure returns the error uncached.
func (c *CategoryCache) All(ctx context.Context) ([]model.Category, error) {
	categories, err := c.typed.GetOrSet(ctx, categoriesKey, func() (*[]model.Category, error) {
		list, err := c.api.AllCategories(ctx)
		if err != nil {
			return nil, err
		}
		return &list, nil
	})
	if err != nil {
		return nil, err
	}
	return *categories, nil
}

// Refresh refetches the category list and replaces the cached copy.
// Used by the background refresh job.
func (c *CategoryCache) Refresh(ctx context.Context) error {
	list, err := c.api.AllCategories(ctx)
	if err != nil {
		return err
	}
	return c.typed.Set(ctx, categoriesKey, &list)
}

// Invalidate drops the cached category list.
func (c *CategoryCache) Invalidate(ctx context.Context) {
	_ = c.typed.Delete(ctx, categoriesKey)
}
