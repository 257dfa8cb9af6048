package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	githubOAuth "golang.org/x/oauth2/github"
)

// GitHubProvider runs the GitHub web application flow.
type GitHubProvider struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// NewGitHubProvider creates a new GitHub OAuth provider.
// Returns an error if ClientID or ClientSecret is empty.
func NewGitHubProvider(cfg GitHubConfig, opts ...Option) (*GitHubProvider, error) {
	if cfg.ClientID == "" {
		return nil, ErrMissingClientID
	}
	if cfg.ClientSecret == "" {
		return nil, ErrMissingClientSecret
	}

	o := options{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	scope := strings.TrimSpace(cfg.Scope)
	if scope == "" {
		scope = DefaultScope
	}

	endpoint := githubOAuth.Endpoint
	if o.endpoint != nil {
		endpoint = *o.endpoint
	}

	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(strings.ReplaceAll(scope, ",", " ")),
			Endpoint:     endpoint,
		},
		httpClient: o.httpClient,
	}, nil
}

// Validate reports whether the provider holds both client credentials.
// Safe on a nil or zero provider.
func (p *GitHubProvider) Validate() error {
	if p == nil || p.config == nil || p.config.ClientID == "" {
		return ErrMissingClientID
	}
	if p.config.ClientSecret == "" {
		return ErrMissingClientSecret
	}
	return nil
}

// AuthCodeURL returns the authorize URL carrying client_id, scope, state and redirect_uri.
func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Code         string `json:"code"`
	RedirectURI  string `json:"redirect_uri"`
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	Scope            string `json:"scope"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange trades an authorization code for an access token.
// A single attempt is made. GitHub reports a bad code with 200 and an
// "error" field, which surfaces as ErrNoAccessToken.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (string, error) {
	body, err := json.Marshal(tokenRequest{
		ClientID:     p.config.ClientID,
		ClientSecret: p.config.ClientSecret,
		Code:         code,
		RedirectURI:  p.config.RedirectURL,
	})
	if err != nil {
		return "", errors.Join(ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.Endpoint.TokenURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Join(ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", errors.Join(ErrFetchFailed, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.Join(ErrRequestFailed, fmt.Errorf("token request failed: status=%d", resp.StatusCode))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", errors.Join(ErrDecodeFailed, err)
	}

	if tr.AccessToken == "" {
		if tr.Error != "" {
			return "", errors.Join(ErrNoAccessToken, fmt.Errorf("github: %s", tr.Error))
		}
		return "", ErrNoAccessToken
	}

	return tr.AccessToken, nil
}
