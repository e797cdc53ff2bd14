package adminapi

import (
	"context"
	"net/http"
)

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}
	var resp LoginResponse
	if err := c.send(ctx, http.MethodPost, loginPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/profile", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
