// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// timeSaverWire mirrors the backend's Time Saver digest card shape.
type timeSaverWire struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Digest      string     `json:"digest"`
	Category    string     `json:"category"`
	Tags        TagList    `json:"tags"`
	ReadSeconds int        `json:"readSeconds"`
	ImageURL    string     `json:"imageUrl"`
	SourceID    int64      `json:"sourceId"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (w timeSaverWire) toModel() model.TimeSaverItem {
	return model.TimeSaverItem{
		ID:          w.ID,
		Title:       w.Title,
		Digest:      w.Digest,
		Category:    w.Category,
		Tags:        w.Tags,
		ReadSeconds: w.ReadSeconds,
		ImageURL:    w.ImageURL,
		SourceID:    w.SourceID,
		PublishedAt: w.PublishedAt,
		CreatedAt:   w.CreatedAt,
	}
}

// ListTimeSaver fetches one page of Time Saver digest cards.
func (c *Client) ListTimeSaver(ctx context.Context, page int) (model.List[model.TimeSaverItem], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/timesaver?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.TimeSaverItem](page), err
	}
	wire := decodeList[timeSaverWire](body, "items", page)
	items := make([]model.TimeSaverItem, 0, len(wire.Items))
	for _, w := range wire.Items {
		items = append(items, w.toModel())
	}
	return model.List[model.TimeSaverItem]{Items: items, Pagination: wire.Pagination}, nil
}

// GetTimeSaverItem fetches one digest card, (nil, nil) when not found.
func (c *Client) GetTimeSaverItem(ctx context.Context, id int64) (*model.TimeSaverItem, error) {
	body, err := c.get(ctx, fmt.Sprintf("/timesaver/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	wire := decodeDetail[timeSaverWire](body, "item")
	if wire == nil {
		return nil, nil
	}
	item := wire.toModel()
	return &item, nil
}

// TimeSaverInput is the write shape for digest card creation.
type TimeSaverInput struct {
	Title       string   `json:"title"`
	Digest      string   `json:"digest"`
	Category    string   `json:"category"`
	ReadSeconds int      `json:"readSeconds"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	SourceID    int64    `json:"sourceId,omitempty"`
	Tags        []string `json:"-"`
}

// MarshalJSON flattens Tags into the wire form.
func (in TimeSaverInput) MarshalJSON() ([]byte, error) {
	type alias TimeSaverInput
	return json.Marshal(struct {
		alias
		Tags string `json:"tags"`
	}{alias(in), SerializeTags(in.Tags)})
}

// CreateTimeSaverItem creates a digest card.
func (c *Client) CreateTimeSaverItem(ctx context.Context, input TimeSaverInput) error {
	_, err := c.do(ctx, http.MethodPost, "/timesaver", input, WithIdempotencyKey())
	return err
}

// DeleteTimeSaverItem removes a digest card.
func (c *Client) DeleteTimeSaverItem(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/timesaver/%d", id), nil)
	return err
}
