// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// ListCategories fetches one page of categories.
func (c *Client) ListCategories(ctx context.Context, page int) (model.List[model.Category], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/categories?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.Category](page), err
	}
	return decodeList[model.Category](body, "categories", page), nil
}

// AllCategories fetches the full category list for form dropdowns.
// The scheduler keeps a cached copy warm; see internal/cache.
func (c *Client) AllCategories(ctx context.Context) ([]model.Category, error) {
	body, err := c.get(ctx, "/categories?limit=500")
	if err != nil {
		return nil, err
	}
	return decodeList[model.Category](body, "categories", 1).Items, nil
}

// GetCategory fetches one category, returning (nil, nil) when no
// recognizable category object is found.
func (c *Client) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	body, err := c.get(ctx, fmt.Sprintf("/categories/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeDetail[model.Category](body, "category"), nil
}

// CategoryInput is the write shape for create/update.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) error {
	_, err := c.do(ctx, http.MethodPost, "/categories", input, WithIdempotencyKey())
	return err
}

// UpdateCategory updates an existing category.
func (c *Client) UpdateCategory(ctx context.Context, id int64, input CategoryInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), input)
	return err
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil)
	return err
}
