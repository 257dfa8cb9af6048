package middlewares_test

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/ghkeeper/middlewares"
)

func TestPanicError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value any
		want  string
	}{
		{"something went wrong", "panic: something went wrong"},
		{42, "panic: 42"},
		{nil, "panic: <nil>"},
	}
	for _, tt := range tests {
		err := &middlewares.PanicError{Value: tt.value}
		require.Equal(t, tt.want, err.Error())
		require.Equal(t, http.StatusInternalServerError, err.StatusCode())
	}

	wrapped := fmt.Errorf("outer: %w", &middlewares.PanicError{Value: "x"})
	var pe *middlewares.PanicError
	require.ErrorAs(t, wrapped, &pe)
	require.Equal(t, "x", pe.Value)
}

func TestPanicError_LogValue(t *testing.T) {
	t.Parallel()

	v := (&middlewares.PanicError{Value: "boom", Stack: []byte("goroutine 1")}).LogValue()
	require.Equal(t, slog.KindGroup, v.Kind())
	attrs := v.Group()
	require.Len(t, attrs, 2)
	require.Equal(t, "boom", attrs[0].Value.String())
	require.Equal(t, "goroutine 1", attrs[1].Value.String())

	noStack := (&middlewares.PanicError{Value: 1}).LogValue()
	require.Len(t, noStack.Group(), 1)
}

func TestTimeoutError(t *testing.T) {
	t.Parallel()

	cause := errors.New("upstream")
	err := &middlewares.TimeoutError{Err: cause, Duration: 1500 * time.Millisecond}

	require.Equal(t, "request timeout after 1.5s", err.Error())
	require.Equal(t, http.StatusServiceUnavailable, err.StatusCode())
	require.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("outer: %w", err)
	var te *middlewares.TimeoutError
	require.ErrorAs(t, wrapped, &te)
	require.Same(t, err, te)
	require.False(t, errors.As(cause, &te))
}
