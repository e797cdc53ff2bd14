package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (c *Client) SystemHealth(ctx context.Context) (*SystemHealth, error) {
	var h SystemHealth
	if err := c.get(ctx, "/system/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) SystemLogs(ctx context.Context, limit int) ([]LogEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		Logs []LogEntry `json:"logs"`
	}
	if err := c.get(ctx, "/system/logs", q, &resp); err != nil {
		return nil, err
	}
	return resp.Logs, nil
}

func (c *Client) SystemPerformance(ctx context.Context) (*SystemPerformance, error) {
	var p SystemPerformance
	if err := c.get(ctx, "/system/performance", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ReportTemplates(ctx context.Context) ([]ReportTemplate, error) {
	var resp struct {
		Templates []ReportTemplate `json:"templates"`
	}
	if err := c.get(ctx, "/reports/templates", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Templates, nil
}

func (c *Client) GenerateReport(ctx context.Context, reportType string, params map[string]string) (*Report, error) {
	if params == nil {
		params = map[string]string{}
	}
	req := struct {
		Type   string            `json:"type"`
		Params map[string]string `json:"params"`
	}{reportType, params}
	var r Report
	if err := c.send(ctx, http.MethodPost, "/reports/generate", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
