package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"

	// APIVersion is sent as X-GitHub-Api-Version on every call.
	APIVersion = "2022-11-28"

	// MediaType is sent as Accept on every call.
	MediaType = "application/vnd.github+json"

	defaultTimeout = 15 * time.Second
)

// Client performs authorized GitHub REST calls on behalf of a user.
// The access token is passed per call; the client itself holds no credentials.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// NewClient returns a client for the public API with a 15s timeout.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "ghkeeper",
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c
}

// NewClientFromConfig builds a client from Config.
func NewClientFromConfig(cfg Config, opts ...Option) *Client {
	base := []Option{WithBaseURL(cfg.APIURL)}
	if cfg.HTTPTimeout > 0 {
		base = append(base, WithTimeout(cfg.HTTPTimeout))
	}
	return NewClient(append(base, opts...)...)
}

// Do sends one request and returns the raw response body.
// An empty body (204, or 201 without content) yields nil.
// Non-2xx responses become *APIError with the upstream status; transport
// failures become *APIError with status 500. No retries are attempted.
func (c *Client) Do(ctx context.Context, token, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, &APIError{StatusCode: http.StatusInternalServerError, Method: method, Path: path, Err: err}
		}
		reader = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", MediaType)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-GitHub-Api-Version", APIVersion)
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log(ctx, method, path, 0, start, err)
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	c.log(ctx, method, path, resp.StatusCode, start, nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{StatusCode: http.StatusInternalServerError, Method: method, Path: path, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	return raw, nil
}

func (c *Client) log(ctx context.Context, method, path string, status int, start time.Time, err error) {
	if c.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("path", path),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		c.logger.LogAttrs(ctx, slog.LevelWarn, "github request failed", attrs...)
		return
	}
	attrs = append(attrs, slog.Int("status", status))
	c.logger.LogAttrs(ctx, slog.LevelDebug, "github request", attrs...)
}

func decode[T any](raw json.RawMessage) (*T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.Join(ErrDecodeFailed, err)
	}
	return &v, nil
}

func repoPath(owner, repo string, rest ...string) string {
	var b strings.Builder
	b.WriteString("/repos/")
	b.WriteString(url.PathEscape(owner))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(repo))
	for _, s := range rest {
		b.WriteByte('/')
		b.WriteString(s)
	}
	return b.String()
}
