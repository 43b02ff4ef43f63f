// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// AIHandler handles the AI/ML article section.
type AIHandler struct {
	api      *newsapi.Client
	renderer *render.Renderer
	sessions *session.Store
}

// NewAIHandler creates a new AIHandler.
func NewAIHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store) *AIHandler {
	return &AIHandler{api: api, renderer: renderer, sessions: sessions}
}

type aiListData struct {
	Articles   []model.AIArticle
	Pagination AdminPagination
	Category   string
	Categories []string
	Trending   bool
}

type aiDetailData struct {
	Article *model.AIArticle
}

type aiFormData struct {
	Categories []string
}

// List renders AI/ML articles with an optional category filter.
func (h *AIHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	category := r.URL.Query().Get("category")

	list, err := h.api.ListAIArticles(r.Context(), page, category)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	// The filter dropdown degrades to empty rather than failing the page.
	categories, catErr := h.api.AICategories(r.Context())
	if catErr != nil {
		categories = nil
	}

	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}

	data := aiListData{
		Articles:   list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteAIArticles, params),
		Category:   category,
		Categories: categories,
	}
	if err := h.renderer.Render(w, r, "admin/ai_articles", render.TemplateData{
		Title: "AI Articles",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering AI article list", "error", err)
	}
}

// Trending renders the trending AI/ML feed.
func (h *AIHandler) Trending(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.TrendingAIArticles(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := aiListData{
		Articles:   list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteAITrending, url.Values{}),
		Trending:   true,
	}
	if err := h.renderer.Render(w, r, "admin/ai_trending", render.TemplateData{
		Title: "Trending AI",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering trending AI list", "error", err)
	}
}

// View renders one AI/ML article in full, with the markdown body
// rendered by the template's markdown helper.
func (h *AIHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAIArticles, "Article not found.")
		return
	}

	article, err := h.api.GetAIArticle(r.Context(), id)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAIArticles, err)
		return
	}
	if article == nil {
		flashError(w, r, h.renderer, redirectAIArticles, "Article not found.")
		return
	}

	if err := h.renderer.Render(w, r, "admin/ai_article", render.TemplateData{
		Title: article.Title,
		Data:  aiDetailData{Article: article},
	}); err != nil {
		logAndInternalError(w, "rendering AI article", "error", err)
	}
}

// New renders the empty AI article form.
func (h *AIHandler) New(w http.ResponseWriter, r *http.Request) {
	categories, err := h.api.AICategories(r.Context())
	if err != nil {
		categories = nil
	}

	if err := h.renderer.Render(w, r, "admin/ai_article_form", render.TemplateData{
		Title: "New AI Article",
		Data:  aiFormData{Categories: categories},
	}); err != nil {
		logAndInternalError(w, "rendering AI article form", "error", err)
	}
}

// Create handles AI article form submission.
func (h *AIHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAIArticles+RouteSuffixNew) {
		return
	}

	input := newsapi.AIArticleInput{
		Title:     strings.TrimSpace(r.FormValue("title")),
		Summary:   strings.TrimSpace(r.FormValue("summary")),
		Content:   r.FormValue("content"),
		Category:  strings.TrimSpace(r.FormValue("category")),
		SourceURL: strings.TrimSpace(r.FormValue("source_url")),
		Tags:      newsapi.ParseTags(r.FormValue("tags")),
	}
	switch {
	case input.Title == "":
		flashError(w, r, h.renderer, RouteAIArticles+RouteSuffixNew, "Title is required.")
		return
	case input.Content == "":
		flashError(w, r, h.renderer, RouteAIArticles+RouteSuffixNew, "Content is required.")
		return
	}

	if err := h.api.CreateAIArticle(r.Context(), input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAIArticles+RouteSuffixNew, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAIArticles, "AI article created.")
}

// Delete removes an AI/ML article.
func (h *AIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAIArticles, "Article not found.")
		return
	}
	if err := h.api.DeleteAIArticle(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteAIArticles, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAIArticles, "AI article deleted.")
}
