package adminapi

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	if err := c.get(ctx, "/dashboard/overview", nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) Analytics(ctx context.Context, days int) (*Analytics, error) {
	if days <= 0 {
		days = 30
	}
	var a Analytics
	q := url.Values{"days": {strconv.Itoa(days)}}
	if err := c.get(ctx, "/dashboard/analytics", q, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Activity
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.get(ctx, "/dashboard/recent-activity", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}
