// Package fetch provides the HTTP transport shared by every source adapter.
//
// A Client bounds each request with a timeout, identifies itself with a
// User-Agent, treats any non-200 response as an error, and knows how to
// decode JSON bodies and RSS/Atom feeds. Adapters build on it and never
// talk to net/http directly.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is sent with every upstream request.
const DefaultUserAgent = "TopicRadarBot/1.0 (+https://github.com/abelbrown/topicradar)"

// maxBodyBytes caps how much of a JSON body is decoded.
const maxBodyBytes = 8 << 20

// ErrStatus is wrapped by errors for non-200 upstream responses.
var ErrStatus = errors.New("unexpected status")

// Client performs timeout-bounded GET requests.
// Safe for concurrent use.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient creates a Client. A non-positive timeout falls back to
// DefaultTimeout and an empty userAgent to DefaultUserAgent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.client.Timeout
}

// SDKClient returns an http.Client for third-party SDKs that build their
// own requests. It shares this client's timeout and transport, sends the
// same User-Agent, and sets params on every request's query string.
func (c *Client) SDKClient(params map[string]string) *http.Client {
	base := c.client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout: c.client.Timeout,
		Transport: &sdkTransport{
			base:      base,
			userAgent: c.userAgent,
			params:    params,
		},
	}
}

type sdkTransport struct {
	base      http.RoundTripper
	userAgent string
	params    map[string]string
}

func (t *sdkTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	if len(t.params) > 0 {
		q := req.URL.Query()
		for k, v := range t.params {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}
	return t.base.RoundTrip(req)
}

// Get issues a GET request. The caller must close the body of a
// successful response; on error the body is already closed.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s from %s", ErrStatus, resp.Status, url)
	}
	return resp, nil
}

// GetJSON fetches url and decodes the JSON body into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}

// Feed fetches and parses an RSS or Atom feed.
func (c *Client) Feed(ctx context.Context, url string) (*gofeed.Feed, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}
	return feed, nil
}
