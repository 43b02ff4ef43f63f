// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/olegiv/newsdesk-go/internal/cache"
	"github.com/olegiv/newsdesk-go/internal/model"
	"github.com/olegiv/newsdesk-go/internal/newsapi"
	"github.com/olegiv/newsdesk-go/internal/render"
	"github.com/olegiv/newsdesk-go/internal/session"
)

// ArticlesHandler handles the article management routes.
type ArticlesHandler struct {
	api        *newsapi.Client
	renderer   *render.Renderer
	sessions   *session.Store
	categories *cache.CategoryCache
}

// NewArticlesHandler creates a new ArticlesHandler.
func NewArticlesHandler(api *newsapi.Client, renderer *render.Renderer, sessions *session.Store, categories *cache.CategoryCache) *ArticlesHandler {
	return &ArticlesHandler{
		api:        api,
		renderer:   renderer,
		sessions:   sessions,
		categories: categories,
	}
}

// articleListData is the view model for the article list page.
type articleListData struct {
	Articles   []model.Article
	Pagination AdminPagination
	Query      string
	Status     string
	CategoryID int64
	Categories []model.Category
	Pending    bool
}

// articleFormData is the view model for the create/edit form.
type articleFormData struct {
	Article    *model.Article
	Categories []model.Category
	IsEdit     bool
}

// List renders the article list with optional search and filters.
// A ?q search goes through the dedicated search endpoint; status and
// category filters go through the list endpoint.
func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")
	categoryID := formInt64FromQuery(r, "category")

	var (
		list model.List[model.Article]
		err  error
	)
	if query != "" {
		list, err = h.api.SearchArticles(r.Context(), query, page)
	} else {
		list, err = h.api.ListArticles(r.Context(), newsapi.ArticleListParams{
			Page:       page,
			PerPage:    defaultPerPage,
			Status:     status,
			CategoryID: categoryID,
		})
	}
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	// Dropdown population must not take the page down with it.
	categories, catErr := h.categories.All(r.Context())
	if catErr != nil {
		categories = nil
	}

	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if status != "" {
		params.Set("status", status)
	}
	if categoryID > 0 {
		params.Set("category", fmt.Sprintf("%d", categoryID))
	}

	data := articleListData{
		Articles:   list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteArticles, params),
		Query:      query,
		Status:     status,
		CategoryID: categoryID,
		Categories: categories,
	}
	if err := h.renderer.Render(w, r, "admin/articles", render.TemplateData{
		Title: "Articles",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering article list", "error", err)
	}
}

// New renders the empty article form.
func (h *ArticlesHandler) New(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.All(r.Context())
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticles, err)
		return
	}

	data := articleFormData{Categories: categories}
	if err := h.renderer.Render(w, r, "admin/article_form", render.TemplateData{
		Title: "New Article",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering article form", "error", err)
	}
}

// Create handles article form submission.
func (h *ArticlesHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteArticles+RouteSuffixNew) {
		return
	}

	input, msg := articleInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, RouteArticles+RouteSuffixNew, msg)
		return
	}

	created, err := h.api.CreateArticle(r.Context(), input)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticles+RouteSuffixNew, err)
		return
	}
	if created != nil {
		flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectArticleEditID, created.ID), "Article created.")
		return
	}
	flashSuccess(w, r, h.renderer, redirectArticles, "Article created.")
}

// Edit renders the edit form for one article.
func (h *ArticlesHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectArticles, "Article not found.")
		return
	}

	article, err := h.api.GetArticle(r.Context(), id)
	if err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticles, err)
		return
	}
	if article == nil {
		flashError(w, r, h.renderer, redirectArticles, "Article not found.")
		return
	}

	categories, catErr := h.categories.All(r.Context())
	if catErr != nil {
		categories = nil
	}

	data := articleFormData{Article: article, Categories: categories, IsEdit: true}
	if err := h.renderer.Render(w, r, "admin/article_form", render.TemplateData{
		Title: "Edit Article",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering article form", "error", err)
	}
}

// Update handles edit form submission.
func (h *ArticlesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectArticles, "Article not found.")
		return
	}
	formURL := fmt.Sprintf(redirectArticleEditID, id)
	if !parseFormOrRedirect(w, r, h.renderer, formURL) {
		return
	}

	input, msg := articleInputFromForm(r)
	if msg != "" {
		flashError(w, r, h.renderer, formURL, msg)
		return
	}

	if err := h.api.UpdateArticle(r.Context(), id, input); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, formURL, err)
		return
	}
	flashSuccess(w, r, h.renderer, formURL, "Article updated.")
}

// Delete removes an article.
func (h *ArticlesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectArticles, "Article not found.")
		return
	}
	if err := h.api.DeleteArticle(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticles, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectArticles, "Article deleted.")
}

// Pending renders the approval queue.
func (h *ArticlesHandler) Pending(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	list, err := h.api.PendingArticles(r.Context(), page)
	if err != nil && backendReadFailure(w, r, h.renderer, h.sessions, h.api, err) {
		return
	}

	data := articleListData{
		Articles:   list.Items,
		Pagination: BuildAdminPagination(list.Pagination, RouteArticlesPending, url.Values{}),
		Pending:    true,
	}
	if err := h.renderer.Render(w, r, "admin/articles_pending", render.TemplateData{
		Title: "Pending Approval",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering pending articles", "error", err)
	}
}

// Approve publishes a pending article.
func (h *ArticlesHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectPending, "Article not found.")
		return
	}
	if err := h.api.ApproveArticle(r.Context(), id); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticlesPending, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectPending, "Article approved.")
}

// Reject declines a pending article with an optional reason.
func (h *ArticlesHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectPending, "Article not found.")
		return
	}
	if !parseFormOrRedirect(w, r, h.renderer, redirectPending) {
		return
	}
	reason := strings.TrimSpace(r.FormValue("reason"))
	if err := h.api.RejectArticle(r.Context(), id, reason); err != nil {
		backendFailure(w, r, h.renderer, h.sessions, h.api, RouteArticlesPending, err)
		return
	}
	flashSuccess(w, r, h.renderer, redirectPending, "Article rejected.")
}

// articleInputFromForm builds the write payload from the posted form.
// Returns a non-empty message when a required field is missing.
func articleInputFromForm(r *http.Request) (newsapi.ArticleInput, string) {
	input := newsapi.ArticleInput{
		Title:      strings.TrimSpace(r.FormValue("title")),
		Slug:       strings.TrimSpace(r.FormValue("slug")),
		Summary:    strings.TrimSpace(r.FormValue("summary")),
		Content:    r.FormValue("content"),
		Status:     r.FormValue("status"),
		CategoryID: formInt64(r, "category_id"),
		ImageURL:   strings.TrimSpace(r.FormValue("image_url")),
		Tags:       newsapi.ParseTags(r.FormValue("tags")),
	}
	switch {
	case input.Title == "":
		return input, "Title is required."
	case input.Content == "":
		return input, "Content is required."
	case input.CategoryID <= 0:
		return input, "Please pick a category."
	}
	return input, ""
}

// formInt64FromQuery parses an int64 query value, returning 0 when
// absent or invalid.
func formInt64FromQuery(r *http.Request, key string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
