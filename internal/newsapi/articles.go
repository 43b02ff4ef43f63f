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
	"sort"
	"strconv"
	"time"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// articleWire mirrors the backend's article shape. Tags tolerate both
// encodings; author and category may arrive flat or as nested objects.
type articleWire struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Summary    string `json:"summary"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	AuthorID   int64  `json:"authorId"`
	AuthorName string `json:"authorName"`
	Author     *struct {
		ID       int64  `json:"id"`
		FullName string `json:"fullName"`
	} `json:"author"`
	CategoryID  int64           `json:"categoryId"`
	Category    json.RawMessage `json:"category"`
	Tags        TagList         `json:"tags"`
	ImageURL    string          `json:"imageUrl"`
	ViewCount   int             `json:"viewCount"`
	PublishedAt *time.Time      `json:"publishedAt"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// toModel flattens the wire shape into the canonical Article.
func (w articleWire) toModel() model.Article {
	a := model.Article{
		ID:          w.ID,
		Title:       w.Title,
		Slug:        w.Slug,
		Summary:     w.Summary,
		Content:     w.Content,
		Status:      w.Status,
		AuthorID:    w.AuthorID,
		AuthorName:  w.AuthorName,
		CategoryID:  w.CategoryID,
		Tags:        w.Tags,
		ImageURL:    w.ImageURL,
		ViewCount:   w.ViewCount,
		PublishedAt: w.PublishedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if a.AuthorName == "" && w.Author != nil {
		a.AuthorID = w.Author.ID
		a.AuthorName = w.Author.FullName
	}
	// Category arrives as either a plain name or a {id, name} object.
	if len(w.Category) > 0 {
		var name string
		if err := json.Unmarshal(w.Category, &name); err == nil {
			a.Category = name
		} else if obj := asObject(w.Category); obj != nil {
			var cat struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			}
			if err := json.Unmarshal(w.Category, &cat); err == nil {
				a.Category = cat.Name
				if a.CategoryID == 0 {
					a.CategoryID = cat.ID
				}
			}
		}
	}
	return a
}

func articlesToModel(wire []articleWire) []model.Article {
	out := make([]model.Article, 0, len(wire))
	for _, w := range wire {
		out = append(out, w.toModel())
	}
	return out
}

// ArticleListParams are the supported list filters.
type ArticleListParams struct {
	Page       int
	PerPage    int
	Status     string
	CategoryID int64
	Search     string
}

func (p ArticleListParams) query() string {
	q := url.Values{}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if p.PerPage > 0 {
		q.Set("limit", strconv.Itoa(p.PerPage))
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	if p.CategoryID > 0 {
		q.Set("categoryId", strconv.FormatInt(p.CategoryID, 10))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q.Encode()
}

// ListArticles fetches one page of articles.
func (c *Client) ListArticles(ctx context.Context, params ArticleListParams) (model.List[model.Article], error) {
	body, err := c.get(ctx, "/articles?"+params.query())
	if err != nil {
		return model.EmptyList[model.Article](params.Page), err
	}
	wire := decodeList[articleWire](body, "articles", params.Page)
	return model.List[model.Article]{
		Items:      articlesToModel(wire.Items),
		Pagination: wire.Pagination,
	}, nil
}

// SearchArticles queries the dedicated search endpoint. When that
// endpoint is unavailable it falls back to the filtered list endpoint
// and sorts client-side by descending publish date to approximate
// server ranking.
func (c *Client) SearchArticles(ctx context.Context, query string, page int) (model.List[model.Article], error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/articles/search?"+q.Encode())
	if err == nil {
		wire := decodeList[articleWire](body, "articles", page)
		return model.List[model.Article]{
			Items:      articlesToModel(wire.Items),
			Pagination: wire.Pagination,
		}, nil
	}

	var transport *TransportError
	unavailable := errors.Is(err, ErrNotFound) ||
		(errors.As(err, &transport) && transport.Status == http.StatusNotImplemented)
	if !unavailable {
		return model.EmptyList[model.Article](page), err
	}

	list, err := c.ListArticles(ctx, ArticleListParams{Page: page, Search: query})
	if err != nil {
		return list, err
	}
	sort.SliceStable(list.Items, func(i, j int) bool {
		a, b := list.Items[i].PublishedAt, list.Items[j].PublishedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return list, nil
}

// GetArticle fetches one article, returning (nil, nil) when the
// response carries no recognizable article object.
func (c *Client) GetArticle(ctx context.Context, id int64) (*model.Article, error) {
	body, err := c.get(ctx, fmt.Sprintf("/articles/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	wire := decodeDetail[articleWire](body, "article")
	if wire == nil {
		return nil, nil
	}
	a := wire.toModel()
	return &a, nil
}

// ArticleInput is the write shape for create/update. Tags are
// serialized to the comma-joined form the backend expects.
type ArticleInput struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug,omitempty"`
	Summary    string   `json:"summary"`
	Content    string   `json:"content"`
	Status     string   `json:"status,omitempty"`
	CategoryID int64    `json:"categoryId"`
	ImageURL   string   `json:"imageUrl,omitempty"`
	Tags       []string `json:"-"`
}

// MarshalJSON flattens Tags into the wire form.
func (in ArticleInput) MarshalJSON() ([]byte, error) {
	type alias ArticleInput
	return json.Marshal(struct {
		alias
		Tags string `json:"tags"`
	}{alias(in), SerializeTags(in.Tags)})
}

// CreateArticle creates an article with an idempotency key.
func (c *Client) CreateArticle(ctx context.Context, input ArticleInput) (*model.Article, error) {
	body, err := c.do(ctx, http.MethodPost, "/articles", input, WithIdempotencyKey())
	if err != nil {
		return nil, err
	}
	wire := decodeDetail[articleWire](body, "article")
	if wire == nil {
		return nil, nil
	}
	a := wire.toModel()
	return &a, nil
}

// UpdateArticle updates an existing article.
func (c *Client) UpdateArticle(ctx context.Context, id int64, input ArticleInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/articles/%d", id), input)
	return err
}

// DeleteArticle removes an article.
func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/articles/%d", id), nil)
	return err
}

// PendingArticles lists articles awaiting approval.
func (c *Client) PendingArticles(ctx context.Context, page int) (model.List[model.Article], error) {
	return c.ListArticles(ctx, ArticleListParams{Page: page, Status: model.ArticleStatusPending})
}

// ApproveArticle moves a pending article to published.
func (c *Client) ApproveArticle(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/articles/%d/approve", id), nil)
	return err
}

// RejectArticle rejects a pending article with an optional reason.
func (c *Client) RejectArticle(ctx context.Context, id int64, reason string) error {
	payload := map[string]string{"reason": reason}
	_, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/articles/%d/reject", id), payload)
	return err
}
