package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/internal"
	"github.com/dmitrymomot/ghkeeper/middlewares"
	"github.com/dmitrymomot/ghkeeper/pkg/logger"
)

func TestAccessLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, logger.Config{Level: "debug", Format: "json"}, middlewares.RequestIDExtractor())

	app := internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(middlewares.RequestID(), middlewares.AccessLog()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/auth/github/callback", func(c internal.Context) error {
				return c.Error(http.StatusBadRequest, "Missing OAuth code")
			})
		})),
	)

	req := httptest.NewRequest(http.MethodGet, "/auth/github/callback?state=abc&code=secretcode", nil)
	req.Header.Set("X-Request-ID", "req-42")
	app.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	for _, raw := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(raw, &rec))
		if rec["msg"] == "http request" {
			line = rec
		}
	}

	require.NotNil(t, line)
	require.Equal(t, "WARN", line["level"])
	require.Equal(t, float64(http.StatusBadRequest), line["status"])
	require.Equal(t, "/auth/github/callback", line["path"])
	require.Equal(t, "req-42", line["request_id"])
	require.NotContains(t, buf.String(), "secretcode")
}
