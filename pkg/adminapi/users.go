package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Users(ctx context.Context, q ListQuery) (*UserList, error) {
	var l UserList
	if err := c.get(ctx, "/users", q.values(), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) User(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error) {
	var u User
	if err := c.send(ctx, http.MethodPut, "/users/"+url.PathEscape(id), upd, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodDelete, "/users/"+url.PathEscape(id))
}

func (c *Client) SuspendUser(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/users/"+url.PathEscape(id)+"/suspend")
}

func (c *Client) ActivateUser(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/users/"+url.PathEscape(id)+"/activate")
}

func (c *Client) action(ctx context.Context, method, path string) (*ActionResult, error) {
	var r ActionResult
	if err := c.send(ctx, method, path, nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
