// Package github is a small gateway to the GitHub REST API for repository
// Actions settings: secrets, variables, environments and caches.
//
// Every call carries the user's OAuth token as a bearer token together with
// the vnd.github+json media type and a pinned API version. Failed calls are
// reported as [*APIError] holding only the upstream status:
//
//	gh := github.NewClient(github.WithTimeout(15 * time.Second))
//	repos, err := gh.ListRepos(ctx, token)
//	var apiErr *github.APIError
//	if errors.As(err, &apiErr) {
//		// apiErr.Status() is the status to relay
//	}
//
// Responses of pass-through calls are returned as raw JSON.
package github
