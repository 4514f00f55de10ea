// Package client is the stemd JSON API client used by stemctl.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/stemd-dev/stemd/pkg/api"
)

type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// Separate triggers one synchronous invocation and returns the server's
// response once the tool has exited. No client-side timeout: separation
// of a full song can take minutes, the caller's context bounds the wait.
func (c *Client) Separate(ctx context.Context, req api.SeparateRequest) (*api.SeparateResponse, error) {
	var out api.SeparateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/v1/separate")
	if err != nil {
		return nil, fmt.Errorf("calling stemd: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stemd returned %s: %s", resp.Status(), strings.TrimSpace(string(resp.Body())))
	}
	return &out, nil
}

func (c *Client) Defaults(ctx context.Context) (*api.Defaults, error) {
	var out api.Defaults
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/api/v1/defaults")
	if err != nil {
		return nil, fmt.Errorf("calling stemd: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("stemd returned %s: %s", resp.Status(), strings.TrimSpace(string(resp.Body())))
	}
	return &out, nil
}

func (c *Client) Health(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("calling stemd: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("stemd returned %s", resp.Status())
	}
	return nil
}
