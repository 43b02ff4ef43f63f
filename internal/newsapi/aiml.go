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

// aiArticleWire mirrors the backend's AI/ML article shape.
type aiArticleWire struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	Category    string     `json:"category"`
	Tags        TagList    `json:"tags"`
	Trending    bool       `json:"trending"`
	Score       float64    `json:"score"`
	SourceURL   string     `json:"sourceUrl"`
	AuthorName  string     `json:"authorName"`
	PublishedAt *time.Time `json:"publishedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (w aiArticleWire) toModel() model.AIArticle {
	return model.AIArticle{
		ID:          w.ID,
		Title:       w.Title,
		Summary:     w.Summary,
		Content:     w.Content,
		Category:    w.Category,
		Tags:        w.Tags,
		Trending:    w.Trending,
		Score:       w.Score,
		SourceURL:   w.SourceURL,
		AuthorName:  w.AuthorName,
		PublishedAt: w.PublishedAt,
		CreatedAt:   w.CreatedAt,
	}
}

func aiArticlesToModel(wire []aiArticleWire) []model.AIArticle {
	out := make([]model.AIArticle, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toModel())
	}
	return out
}

// ListAIArticles fetches one page of AI/ML articles, optionally
// filtered by category.
func (c *Client) ListAIArticles(ctx context.Context, page int, category string) (model.List[model.AIArticle], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))
	if category != "" {
		q.Set("category", category)
	}

	body, err := c.get(ctx, "/aiml/articles?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.AIArticle](page), err
	}
	wire := decodeList[aiArticleWire](body, "articles", page)
	return model.List[model.AIArticle]{
		Items:      aiArticlesToModel(wire.Items),
		Pagination: wire.Pagination,
	}, nil
}

// TrendingAIArticles fetches the trending subset.
func (c *Client) TrendingAIArticles(ctx context.Context, page int) (model.List[model.AIArticle], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/aiml/trending?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.AIArticle](page), err
	}
	wire := decodeList[aiArticleWire](body, "articles", page)
	return model.List[model.AIArticle]{
		Items:      aiArticlesToModel(wire.Items),
		Pagination: wire.Pagination,
	}, nil
}

// AICategories fetches the AI/ML category names.
func (c *Client) AICategories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/aiml/categories")
	if err != nil {
		return nil, err
	}
	return decodeList[string](body, "categories", 1).Items, nil
}

// GetAIArticle fetches one AI/ML article, (nil, nil) when not found.
func (c *Client) GetAIArticle(ctx context.Context, id int64) (*model.AIArticle, error) {
	body, err := c.get(ctx, fmt.Sprintf("/aiml/articles/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	wire := decodeDetail[aiArticleWire](body, "article")
	if wire == nil {
		return nil, nil
	}
	a := wire.toModel()
	return &a, nil
}

// AIArticleInput is the write shape for AI/ML article creation.
type AIArticleInput struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	SourceURL string   `json:"sourceUrl,omitempty"`
	Tags      []string `json:"-"`
}

// MarshalJSON flattens Tags into the wire form.
func (in AIArticleInput) MarshalJSON() ([]byte, error) {
	type alias AIArticleInput
	return json.Marshal(struct {
		alias
		Tags string `json:"tags"`
	}{alias(in), SerializeTags(in.Tags)})
}

// CreateAIArticle creates an AI/ML article.
func (c *Client) CreateAIArticle(ctx context.Context, input AIArticleInput) error {
	_, err := c.do(ctx, http.MethodPost, "/aiml/articles", input, WithIdempotencyKey())
	return err
}

// DeleteAIArticle removes an AI/ML article.
func (c *Client) DeleteAIArticle(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/aiml/articles/%d", id), nil)
	return err
}
