package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/strandhttp/strand"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLog(t *testing.T) {
	t.Run("logs method path status and duration", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		app := strand.New()
		require.NoError(t, app.Get("/hello", func(_ context.Context, _ *strand.Request) (any, error) {
			return "hi", nil
		}))

		in, out := AccessLog(AccessLogConfig{Logger: logger})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/hello"})

		line := buf.String()
		assert.Contains(t, line, "method=GET")
		assert.Contains(t, line, "path=/hello")
		assert.Contains(t, line, "status=200")
		assert.Contains(t, line, "duration=")
	})

	t.Run("logs fallback responses too", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		app := strand.New()
		in, out := AccessLog(AccessLogConfig{Logger: logger})
		app.UseIncoming(in)
		app.UseOutgoing(out)

		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/missing"})

		assert.Contains(t, buf.String(), "status=404")
	})

	t.Run("includes request id when present", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		app := strand.New()
		require.NoError(t, app.Get("/", func(_ context.Context, _ *strand.Request) (any, error) {
			return "ok", nil
		}))

		idIn, idOut := RequestID(RequestIDConfig{GenerateFunc: func(_ *strand.Request) string { return "rid-1" }})
		logIn, logOut := AccessLog(AccessLogConfig{Logger: logger})
		app.UseIncoming(idIn, logIn)
		app.UseOutgoing(idOut, logOut)

		app.Dispatch(context.Background(), strand.RawRequest{Method: http.MethodGet, URL: "/"})

		assert.Contains(t, buf.String(), "request_id=rid-1")
	})
}
