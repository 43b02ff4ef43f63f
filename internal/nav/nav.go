// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package nav defines the admin sidebar navigation and its role-based
// filtering. The menu is a static table filtered per role. The sets
// here track who works in a section day to day; a few read-only routes
// stay reachable by direct URL for roles that do not see the entry.
package nav

import (
	"strings"

	"github.com/olegiv/newsdesk-go/internal/model"
)

// Entry is a single navigation item. Entries with children render as
// expandable sections.
type Entry struct {
	Name     string
	Path     string
	Icon     string
	Roles    model.RoleSet
	Children []Entry
}

// IsActive reports whether the entry matches the current request path.
// An entry is active on its exact path and on subpaths, so /articles
// stays highlighted on /articles/42/edit. Prefix matching is segment
// aware: /articles does not light up on /articles-archive.
func (e Entry) IsActive(path string) bool {
	if path == e.Path {
		return true
	}
	if e.Path == "/" {
		return false
	}
	return strings.HasPrefix(path, e.Path+"/")
}

// menu is the full navigation table. Order here is render order.
var menu = []Entry{
	{Name: "Dashboard", Path: "/", Icon: "home", Roles: model.AnyRole},
	{Name: "Articles", Path: "/articles", Icon: "file-text", Roles: model.ContentWriters},
	{Name: "Pending Approval", Path: "/articles/pending", Icon: "check-circle", Roles: model.Approvers},
	{Name: "Categories", Path: "/categories", Icon: "folder", Roles: model.ContentWriters},
	{Name: "Advertisements", Path: "/ads", Icon: "megaphone", Roles: model.Approvers},
	{
		Name:  "AI Tools",
		Path:  "/ai",
		Icon:  "sparkles",
		Roles: model.AICreators,
		Children: []Entry{
			{Name: "AI Articles", Path: "/ai/articles", Roles: model.AICreators},
			{Name: "Trending", Path: "/ai/trending", Roles: model.AICreators},
			{Name: "Time Savers", Path: "/ai/timesavers", Roles: model.AICreators},
		},
	},
	{Name: "Analytics", Path: "/analytics", Icon: "bar-chart", Roles: model.Approvers},
	{Name: "Users", Path: "/users", Icon: "users", Roles: model.AdminsOnly},
	{Name: "Event Log", Path: "/events", Icon: "list", Roles: model.AdminsOnly},
	{Name: "Profile", Path: "/profile", Icon: "user", Roles: model.AnyRole},
}

// Visible returns the menu entries the given role may see, with child
// entries filtered the same way. Entries whose children are all
// filtered out keep their own visibility: the parent link still works.
func Visible(role model.Role) []Entry {
	var out []Entry
	for _, entry := range menu {
		if !entry.Roles.Contains(role) {
			continue
		}
		if len(entry.Children) > 0 {
			children := make([]Entry, 0, len(entry.Children))
			for _, child := range entry.Children {
				if child.Roles.Contains(role) {
					children = append(children, child)
				}
			}
			entry.Children = children
		}
		out = append(out, entry)
	}
	return out
}
