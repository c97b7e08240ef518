package ssr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Render results reported by callers that fall back to client rendering.
const (
	RenderOK       = "ok"
	RenderFallback = "fallback"
)

const (
	defaultRenderTimeout = 2 * time.Second
	maxRenderResponse    = 4 << 20
)

// Rendered is the renderer's answer for one page.
type Rendered struct {
	Head []string `json:"head"`
	Body string   `json:"body"`
}

// HeadHTML joins the head fragments.
func (r Rendered) HeadHTML() string {
	return strings.Join(r.Head, "\n")
}

// Client posts pages to the renderer's /render endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client. The default times out after two seconds.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// NewClient returns a client for the renderer listening at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRenderTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Render sends page as JSON and decodes the rendered head and body.
func (c *Client) Render(ctx context.Context, page any) (Rendered, error) {
	payload, err := json.Marshal(page)
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: encode page: %w", ErrRender, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/render", bytes.NewReader(payload))
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Rendered{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxRenderResponse))
		return Rendered{}, fmt.Errorf("%w: unexpected status %d", ErrRender, resp.StatusCode)
	}

	var out Rendered
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxRenderResponse)).Decode(&out); err != nil {
		return Rendered{}, fmt.Errorf("%w: decode response: %w", ErrRender, err)
	}
	return out, nil
}
