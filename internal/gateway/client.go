package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	defaultLoginPath = "/login"
	maxBodyBytes     = 4 << 20
)

// Metrics observes every backend round trip.
type Metrics interface {
	ObserveBackendRequest(method, endpoint string, status int, elapsed time.Duration)
}

// Config groups Client dependencies.
type Config struct {
	// BaseURL is the backend API root, e.g. https://api.example.com/api/v1.
	BaseURL string
	// HTTPClient's transport is wrapped; nil uses http.DefaultTransport.
	HTTPClient *http.Client
	Timeout    time.Duration
	Sessions   SessionResolver
	Redirector *Redirector
	// LoginPath is where a 401 sends the operator. Defaults to /login.
	LoginPath string
	UserAgent string
	Logger    *slog.Logger
	Metrics   Metrics
}

// Client is the single HTTP client every backend call goes through.
// It authorizes requests with the session's access token and, on a 401,
// clears the session cache and redirects to the login page before returning
// the error to the caller.
type Client struct {
	base       *url.URL
	http       *http.Client
	sessions   SessionResolver
	redirector *Redirector
	loginPath  string
	userAgent  string
	logger     *slog.Logger
	metrics    Metrics
}

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("backend url must be http(s), got %q", cfg.BaseURL)
	}

	var inner http.RoundTripper = http.DefaultTransport
	timeout := cfg.Timeout
	if cfg.HTTPClient != nil {
		if cfg.HTTPClient.Transport != nil {
			inner = cfg.HTTPClient.Transport
		}
		if timeout == 0 {
			timeout = cfg.HTTPClient.Timeout
		}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	loginPath := cfg.LoginPath
	if loginPath == "" {
		loginPath = defaultLoginPath
	}

	return &Client{
		base: base,
		http: &http.Client{
			Transport: &bearerTransport{base: inner, sessions: cfg.Sessions},
			Timeout:   timeout,
		},
		sessions:   cfg.Sessions,
		redirector: cfg.Redirector,
		loginPath:  loginPath,
		userAgent:  cfg.UserAgent,
		logger:     logger.With("component", "gateway"),
		metrics:    cfg.Metrics,
	}, nil
}

// Request describes one backend call.
type Request struct {
	Method string
	// Path is relative to the base URL, e.g. /superadmin/pharmacies.
	Path  string
	Query url.Values
	// Body is JSON-encoded when non-nil.
	Body any
}

// Get decodes the JSON response of a GET into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

// Post sends body as JSON and decodes the response into out (which may be nil).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

// Patch sends body as JSON and decodes the response into out (which may be nil).
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

// Do performs the request. Non-2xx responses yield *ResponseError and
// transport failures yield *TransportError.
func (c *Client) Do(ctx context.Context, r Request, out any) error {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(r, 0, start)
		c.logger.WarnContext(ctx, "backend unreachable", "method", r.Method, "path", r.Path, "error", err)
		return &TransportError{Method: r.Method, URL: req.URL.String(), Err: unwrapURLError(err)}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body", "error", cerr)
		}
	}()
	c.observe(r, resp.StatusCode, start)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Method: r.Method, URL: req.URL.String(), Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &ResponseError{Method: r.Method, URL: req.URL.String(), Status: resp.StatusCode, Body: body}
		if rerr.Unauthorized() {
			c.handleUnauthorized(ctx, r)
		}
		return rerr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", r.Method, r.Path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	u := c.base.JoinPath(r.Path)
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// handleUnauthorized clears the session cache and sends the operator to the
// login page. The caller still receives the error.
func (c *Client) handleUnauthorized(ctx context.Context, r Request) {
	c.logger.InfoContext(ctx, "backend rejected credentials; clearing session cache", "method", r.Method, "path", r.Path)
	if c.sessions != nil {
		if cache := c.sessions(ctx); cache != nil {
			cache.ClearCache()
		}
	}
	c.redirector.RedirectTo(ctx, c.loginPath)
}

func (c *Client) observe(r Request, status int, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveBackendRequest(r.Method, endpointLabel(r.Path), status, time.Since(start))
}

// endpointLabel collapses ids in a path so metric cardinality stays bounded:
// /superadmin/pharmacies/42/verify -> /superadmin/pharmacies/:id/verify.
func endpointLabel(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for i, p := range parts {
		if looksLikeID(p) {
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}

func looksLikeID(s string) bool {
	if s == "" {
		return false
	}
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '-' || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F'):
		default:
			return false
		}
	}
	return digits > 0
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err
	}
	return err
}
