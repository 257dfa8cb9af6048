package oauth

import (
	"net/http"

	"golang.org/x/oauth2"
)

// Option configures an OAuth provider.
type Option func(*options)

type options struct {
	httpClient *http.Client
	endpoint   *oauth2.Endpoint
}

// WithHTTPClient sets the HTTP client used for the token exchange.
// Useful for tests with httptest servers or custom transports.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithEndpoint overrides the GitHub authorize and token URLs
// (GitHub Enterprise Server, tests).
func WithEndpoint(e oauth2.Endpoint) Option {
	return func(o *options) {
		o.endpoint = &e
	}
}
