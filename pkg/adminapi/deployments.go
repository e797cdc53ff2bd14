package adminapi

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Deployments(ctx context.Context, q ListQuery) (*DeploymentList, error) {
	var l DeploymentList
	if err := c.get(ctx, "/deployments", q.values(), &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) Deployment(ctx context.Context, id string) (*Deployment, error) {
	var d Deployment
	if err := c.get(ctx, "/deployments/"+url.PathEscape(id), nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) DeleteDeployment(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodDelete, "/deployments/"+url.PathEscape(id))
}

func (c *Client) Redeploy(ctx context.Context, id string) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/deployments/"+url.PathEscape(id)+"/redeploy")
}

func (c *Client) DeploymentStatistics(ctx context.Context) (*DeploymentStatistics, error) {
	var s DeploymentStatistics
	if err := c.get(ctx, "/deployments/statistics", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
