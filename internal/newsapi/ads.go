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
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// adWire mirrors the backend's advertisement shape, which diverges
// from the console's: content vs description, boolean isActive vs the
// ACTIVE/PAUSED status pair, clickCount vs clicks, and a budget
// transmitted as a string.
type adWire struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	IsActive    bool       `json:"isActive"`
	ImageURL    string     `json:"imageUrl"`
	TargetURL   string     `json:"targetUrl"`
	ClickCount  int        `json:"clickCount"`
	Impressions int        `json:"impressions"`
	Budget      string     `json:"budget"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// toModel maps the wire fields onto the canonical Advertisement.
// An unparseable budget degrades to 0 rather than failing the list.
func (w adWire) toModel() model.Advertisement {
	status := model.AdStatusPaused
	if w.IsActive {
		status = model.AdStatusActive
	}

	budget, err := strconv.ParseFloat(w.Budget, 64)
	if err != nil {
		budget = 0
	}

	return model.Advertisement{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Content,
		Status:      status,
		ImageURL:    w.ImageURL,
		TargetURL:   w.TargetURL,
		Clicks:      w.ClickCount,
		Impressions: w.Impressions,
		Budget:      budget,
		StartDate:   w.StartDate,
		EndDate:     w.EndDate,
		CreatedAt:   w.CreatedAt,
	}
}

func adsToModel(wire []adWire) []model.Advertisement {
	out := make([]model.Advertisement, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toModel())
	}
	return out
}

// AdInput is the write shape for create/update, in canonical field
// names; toWire translates back to what the backend expects.
type AdInput struct {
	Title       string
	Description string
	Status      string
	ImageURL    string
	TargetURL   string
	Budget      float64
	StartDate   *time.Time
	EndDate     *time.Time
}

// toWire maps canonical write fields back to the backend's names.
// Budget travels as a string on the wire.
func (in AdInput) toWire() map[string]any {
	payload := map[string]any{
		"title":    in.Title,
		"content":  in.Description,
		"isActive": in.Status == model.AdStatusActive,
		"budget":   strconv.FormatFloat(in.Budget, 'f', 2, 64),
	}
	if in.ImageURL != "" {
		payload["imageUrl"] = in.ImageURL
	}
	if in.TargetURL != "" {
		payload["targetUrl"] = in.TargetURL
	}
	if in.StartDate != nil {
		payload["startDate"] = in.StartDate
	}
	if in.EndDate != nil {
		payload["endDate"] = in.EndDate
	}
	return payload
}

// ListAds fetches one page of advertisements.
func (c *Client) ListAds(ctx context.Context, page int) (model.List[model.Advertisement], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/advertisements?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.Advertisement](page), err
	}
	wire := decodeList[adWire](body, "advertisements", page)
	return model.List[model.Advertisement]{
		Items:      adsToModel(wire.Items),
		Pagination: wire.Pagination,
	}, nil
}

// GetAd fetches one advertisement, (nil, nil) when not found.
func (c *Client) GetAd(ctx context.Context, id int64) (*model.Advertisement, error) {
	body, err := c.get(ctx, fmt.Sprintf("/advertisements/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	wire := decodeDetail[adWire](body, "advertisement")
	if wire == nil {
		return nil, nil
	}
	ad := wire.toModel()
	return &ad, nil
}

// CreateAd creates an advertisement.
func (c *Client) CreateAd(ctx context.Context, input AdInput) error {
	_, err := c.do(ctx, http.MethodPost, "/advertisements", input.toWire(), WithIdempotencyKey())
	return err
}

// UpdateAd updates an existing advertisement.
func (c *Client) UpdateAd(ctx context.Context, id int64, input AdInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/advertisements/%d", id), input.toWire())
	return err
}

// DeleteAd removes an advertisement.
func (c *Client) DeleteAd(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/advertisements/%d", id), nil)
	return err
}
