// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP handlers for the admin console.
// Handlers talk to the publishing backend through the newsapi client
// and render server-side templates; they never expose raw backend
// responses to the browser.
package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/new"
	// RouteSuffixEdit is the suffix for edit routes.
	RouteSuffixEdit = "/{id}/edit"
	// RouteSuffixApprove is the suffix for approval routes.
	RouteSuffixApprove = "/{id}/approve"
	// RouteSuffixReject is the suffix for rejection routes.
	RouteSuffixReject = "/{id}/reject"
	// RouteSuffixStatus is the suffix for activation toggle routes.
	RouteSuffixStatus = "/{id}/status"
	// RouteSuffixDelete is the suffix for deletion routes.
	RouteSuffixDelete = "/{id}/delete"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"

	// RouteArticles is the articles route.
	RouteArticles = "/articles"
	// RouteArticlesPending is the pending approval route.
	RouteArticlesPending = "/articles/pending"
	// RouteCategories is the categories route.
	RouteCategories = "/categories"
	// RouteAds is the advertisements route.
	RouteAds = "/ads"
	// RouteUsers is the user management route.
	RouteUsers = "/users"
	// RouteAI is the AI tools route prefix.
	RouteAI = "/ai"
	// RouteAIArticles is the AI articles route.
	RouteAIArticles = "/ai/articles"
	// RouteAITrending is the trending AI articles route.
	RouteAITrending = "/ai/trending"
	// RouteAITimeSavers is the time saver items route.
	RouteAITimeSavers = "/ai/timesavers"
	// RouteAnalytics is the analytics route.
	RouteAnalytics = "/analytics"
	// RouteProfile is the profile route.
	RouteProfile = "/profile"
	// RouteEvents is the diagnostics event log route.
	RouteEvents = "/events"
	// RouteHealth is the health check route.
	RouteHealth = "/healthz"
)

// Redirect targets used after form submissions.
const (
	redirectDashboard     = RouteRoot
	redirectLogin         = RouteLogin
	redirectArticles      = RouteArticles
	redirectPending       = RouteArticlesPending
	redirectCategories    = RouteCategories
	redirectAds           = RouteAds
	redirectUsers         = RouteUsers
	redirectAIArticles    = RouteAIArticles
	redirectAITimeSavers  = RouteAITimeSavers
	redirectProfile       = RouteProfile
	redirectArticleEditID = RouteArticles + "/%d/edit"
)

// defaultPerPage is the page size assumed when the backend reports none.
const defaultPerPage = 10
