package middleware

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/strandhttp/strand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *strand.App {
	t.Helper()
	app := strand.New()
	require.NoError(t, app.Get("/", func(_ context.Context, req *strand.Request) (any, error) {
		return RequestIDFrom(req), nil
	}))
	return app
}

func TestRequestID(t *testing.T) {
	t.Run("generates a uuid by default", func(t *testing.T) {
		app := newTestApp(t)
		in, out := RequestID(RequestIDConfig{})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		resp := app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/"})

		id := resp.Headers.Get("X-Request-ID")
		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, string(resp.Content), "handler should see the same ID")
	})

	t.Run("trusts incoming header when configured", func(t *testing.T) {
		app := newTestApp(t)
		in, out := RequestID(RequestIDConfig{TrustIncoming: true})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		resp := app.Dispatch(context.Background(), strand.RawRequest{
			Method:  http.MethodGet,
			URL:     "/",
			Headers: map[string]string{"X-Request-ID": "given-id"},
		})

		assert.Equal(t, "given-id", resp.Headers.Get("X-Request-ID"))
	})

	t.Run("ignores incoming header by default", func(t *testing.T) {
		app := newTestApp(t)
		in, out := RequestID(RequestIDConfig{})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		resp := app.Dispatch(context.Background(), strand.RawRequest{
			Method:  http.MethodGet,
			URL:     "/",
			Headers: map[string]string{"X-Request-ID": "given-id"},
		})

		assert.NotEqual(t, "given-id", resp.Headers.Get("X-Request-ID"))
	})

	t.Run("custom header and generator", func(t *testing.T) {
		app := newTestApp(t)
		in, out := RequestID(RequestIDConfig{
			HeaderName:   "X-Trace",
			GenerateFunc: func(_ *strand.Request) string { return "fixed" },
		})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		resp := app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/"})

		assert.Equal(t, "fixed", resp.Headers.Get("X-Trace"))
	})

	t.Run("RequestIDFrom without middleware is empty", func(t *testing.T) {
		req := &strand.Request{Values: map[string]any{}}
		assert.Empty(t, RequestIDFrom(req))
	})
}

func TestGenerateUUIDv7Ordering(t *testing.T) {
	a := GenerateUUIDv7(nil)
	b := GenerateUUIDv7(nil)
	assert.Less(t, a, b)
}
