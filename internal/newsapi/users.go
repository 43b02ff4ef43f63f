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

// normalizeUsers maps unknown role strings onto RoleUnknown so a new
// backend role never crashes the console, it just gets no access.
func normalizeUsers(users []model.User) []model.User {
	for i := range users {
		users[i].Role = model.ParseRole(string(users[i].Role))
	}
	return users
}

// ListUsers fetches one page of operators.
func (c *Client) ListUsers(ctx context.Context, page int) (model.List[model.User], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(page, 1)))

	body, err := c.get(ctx, "/users?"+q.Encode())
	if err != nil {
		return model.EmptyList[model.User](page), err
	}
	list := decodeList[model.User](body, "users", page)
	list.Items = normalizeUsers(list.Items)
	return list, nil
}

// GetUser fetches one operator, (nil, nil) when not found.
func (c *Client) GetUser(ctx context.Context, id int64) (*model.User, error) {
	body, err := c.get(ctx, fmt.Sprintf("/users/%d", id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	user := decodeDetail[model.User](body, "user")
	if user == nil {
		return nil, nil
	}
	user.Role = model.ParseRole(string(user.Role))
	return user, nil
}

// UserInput is the write shape for create/update.
type UserInput struct {
	Email    string     `json:"email"`
	FullName string     `json:"fullName"`
	Role     model.Role `json:"role"`
	IsActive bool       `json:"isActive"`
	Password string     `json:"password,omitempty"`
}

// CreateUser creates an operator account.
func (c *Client) CreateUser(ctx context.Context, input UserInput) error {
	_, err := c.do(ctx, http.MethodPost, "/users", input, WithIdempotencyKey())
	return err
}

// UpdateUser updates an operator account.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/users/%d", id), input)
	return err
}

// DeleteUser removes an operator account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	return err
}

// SetUserActive toggles an account's active flag.
func (c *Client) SetUserActive(ctx context.Context, id int64, active bool) error {
	payload := map[string]bool{"isActive": active}
	_, err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/users/%d/status", id), payload)
	return err
}
