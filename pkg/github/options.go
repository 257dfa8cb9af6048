package github

import (
	"log/slog"
	"net/http"
	"time"
)

// Config holds GitHub REST API settings.
type Config struct {
	APIURL      string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com"`
	HTTPTimeout time.Duration `env:"GITHUB_HTTP_TIMEOUT" envDefault:"15s"`
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (GitHub Enterprise, tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient replaces the HTTP client. Its Timeout bounds every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger enables debug logging of upstream calls.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}
