// Package minerapi is an HTTP client for a miner's JSON stats endpoint.
package minerapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/five82/minerdash/internal/buildinfo"
	"github.com/five82/minerdash/internal/stats"
)

// StatsPath is the endpoint serving the rig's stats payload.
const StatsPath = "/v1/stats"

const (
	defaultAPIBind = "127.0.0.1:3413"
	requestTimeout = 5 * time.Second
	maxErrorBody   = 512
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatsFetcher is implemented by *Client and stubbed in tests.
type StatsFetcher interface {
	FetchStats(ctx context.Context) (*stats.Stats, error)
}

var _ StatsFetcher = (*Client)(nil)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Path string
	Code int
	Body string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("api %s returned status %d", e.Path, e.Code)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the miner's HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for apiBind, a host:port or full URL.
func NewClient(apiBind string) (*Client, error) {
	base, err := parseBaseURL(apiBind)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: "minerdash/" + buildinfo.Get().Version,
	}, nil
}

// BaseURL returns the normalized endpoint root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchStats retrieves the current rig stats.
func (c *Client) FetchStats(ctx context.Context) (*stats.Stats, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload stats.Stats
	if err := c.get(ctx, StatsPath, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseBaseURL(apiBind string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiBind)
	if trimmed == "" {
		trimmed = defaultAPIBind
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_bind %q: %w", apiBind, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse api_bind %q: unsupported scheme %q", apiBind, u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_bind %q: missing host", apiBind)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
