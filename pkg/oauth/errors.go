package oauth

import "errors"

var (
	// ErrMissingClientID is returned when the OAuth client ID is not provided.
	ErrMissingClientID = errors.New("oauth: missing client ID")

	// ErrMissingClientSecret is returned when the OAuth client secret is not provided.
	ErrMissingClientSecret = errors.New("oauth: missing client secret")

	// ErrFetchFailed is returned when the token endpoint cannot be reached.
	ErrFetchFailed = errors.New("oauth: failed to fetch from provider")

	// ErrRequestFailed is returned when the token endpoint returns a non-2xx status.
	ErrRequestFailed = errors.New("oauth: request returned non-OK status")

	// ErrDecodeFailed is returned when decoding the token response fails.
	ErrDecodeFailed = errors.New("oauth: failed to decode response")

	// ErrNoAccessToken is returned when the token response carries no access_token.
	ErrNoAccessToken = errors.New("oauth: token exchange returned no access token")

	// ErrStateGeneration is returned when the random source fails.
	ErrStateGeneration = errors.New("oauth: failed to generate state")
)
