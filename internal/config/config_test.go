package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/internal/config"
)

const secret = "0123456789abcdef0123456789abcdef"

func baseEnv() map[string]string {
	return map[string]string{
		"GITHUB_CLIENT_ID":     "Iv1.abc",
		"GITHUB_CLIENT_SECRET": "shh",
		"SESSION_SECRET":       secret,
	}
}

func with(overrides map[string]string) map[string]string {
	vars := baseEnv()
	for k, v := range overrides {
		vars[k] = v
	}
	return vars
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(baseEnv())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "repo", cfg.OAuth.Scope)
	assert.Equal(t, "http://localhost:8080/auth/github/callback", cfg.OAuth.RedirectURL)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIURL)
	assert.Equal(t, 15*time.Second, cfg.GitHub.HTTPTimeout)
	assert.Equal(t, config.StoreMemory, cfg.Session.Store)
	assert.Equal(t, []string{"en", "ja"}, cfg.Locales)
	assert.Equal(t, "en", cfg.DefaultLocale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(with(map[string]string{
		"APP_ENV":                   "development",
		"APP_BASE_URL":              "https://keeper.example.com/",
		"GITHUB_OAUTH_CALLBACK_URL": "https://auth.example.com/cb",
		"GITHUB_HTTP_TIMEOUT":       "3s",
		"SESSION_STORE":             "Redis",
		"REDIS_URL":                 "redis://localhost:6379/0",
		"LOCALES":                   "en, ja ,",
		"CORS_ALLOWED_ORIGINS":      "http://localhost:3000,http://127.0.0.1:3000",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "https://keeper.example.com", cfg.BaseURL)
	assert.Equal(t, "https://auth.example.com/cb", cfg.OAuth.RedirectURL)
	assert.Equal(t, 3*time.Second, cfg.GitHub.HTTPTimeout)
	assert.Equal(t, config.StoreRedis, cfg.Session.Store)
	assert.Equal(t, []string{"en", "ja"}, cfg.Locales)
	assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.CORSOrigins)
}

func TestLoadFrom_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vars map[string]string
		want error
	}{
		{
			name: "missing client id",
			vars: func() map[string]string { v := baseEnv(); delete(v, "GITHUB_CLIENT_ID"); return v }(),
			want: config.ErrParse,
		},
		{
			name: "missing session secret",
			vars: func() map[string]string { v := baseEnv(); delete(v, "SESSION_SECRET"); return v }(),
			want: config.ErrParse,
		},
		{
			name: "short secret",
			vars: with(map[string]string{"SESSION_SECRET": "too-short"}),
			want: config.ErrShortSecret,
		},
		{
			name: "unknown store",
			vars: with(map[string]string{"SESSION_STORE": "etcd"}),
			want: config.ErrUnknownStore,
		},
		{
			name: "redis without url",
			vars: with(map[string]string{"SESSION_STORE": "redis"}),
			want: config.ErrMissingRedisURL,
		},
		{
			name: "postgres without url",
			vars: with(map[string]string{"SESSION_STORE": "postgres"}),
			want: config.ErrMissingDatabaseURL,
		},
		{
			name: "relative base url",
			vars: with(map[string]string{"APP_BASE_URL": "/keeper"}),
			want: config.ErrInvalidBaseURL,
		},
		{
			name: "bad duration",
			vars: with(map[string]string{"GITHUB_HTTP_TIMEOUT": "soon"}),
			want: config.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.LoadFrom(tt.vars)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadFrom_BoltStore(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(with(map[string]string{"SESSION_STORE": "bolt"}))
	require.NoError(t, err)
	assert.Equal(t, "./data/sessions.db", cfg.BoltPath)
}

func TestLoadFrom_SweepSchedule(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(baseEnv())
	require.NoError(t, err)
	assert.Equal(t, "*/10 * * * *", cfg.Session.SweepSchedule)

	cfg, err = config.LoadFrom(with(map[string]string{"SESSION_SWEEP_SCHEDULE": "@every 1h"}))
	require.NoError(t, err)
	assert.Equal(t, "@every 1h", cfg.Session.SweepSchedule)
}
