// Package config loads ghkeeper's settings from environment variables.
//
// Required: GITHUB_CLIENT_ID, GITHUB_CLIENT_SECRET and SESSION_SECRET (32+ bytes).
// SESSION_STORE picks the backend (memory, redis, postgres, bolt); redis needs
// REDIS_URL, postgres needs DATABASE_URL. GITHUB_OAUTH_CALLBACK_URL defaults to
// APP_BASE_URL + /auth/github/callback.
package config
