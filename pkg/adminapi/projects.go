package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Projects(ctx context.Context, q ListQuery) (*ProjectList, error) {
	var l ProjectList
	if err := c.get(ctx, "/projects", q.values(), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	var p Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id))
}

// ProjectAnalytics returns the raw analytics document of one project.
func (c *Client) ProjectAnalytics(ctx context.Context, id string) (map[string]any, error) {
	out := map[string]any{}
	if err := c.get(ctx, "/projects/"+url.PathEscape(id)+"/analytics", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
