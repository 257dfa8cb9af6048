// Package oauth implements the GitHub OAuth web application flow:
// building the authorize URL, generating and comparing the state nonce,
// and exchanging the callback code for an access token.
//
// Usage:
//
//	p, err := oauth.NewGitHubProvider(cfg.OAuth)
//	state, err := oauth.NewState()
//	http.Redirect(w, r, p.AuthCodeURL(state), http.StatusFound)
//
//	// callback
//	if !oauth.StateMatches(cookieState, r.URL.Query().Get("state")) { ... }
//	token, err := p.Exchange(ctx, r.URL.Query().Get("code"))
//
// Exchange never retries and returns [ErrNoAccessToken] when GitHub answers
// without an access_token.
package oauth
