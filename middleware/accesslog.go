package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/strandhttp/strand"
)

// startTimeValuesKey is the Request.Values key the incoming half stores
// the dispatch start time under.
const startTimeValuesKey = "middleware.access_log_start"

// AccessLogConfig configures the Access Log middleware behaviour.
type AccessLogConfig struct {
	// Logger receives the access log records. Defaults to slog.Default.
	Logger *slog.Logger

	// Level is the level access records are emitted at.
	// Defaults to slog.LevelInfo.
	Level slog.Level
}

// AccessLog returns middleware that writes one structured log line per
// completed request: method, path, status, response size, duration, and
// the request ID when the RequestID middleware ran before it.
func AccessLog(cfg AccessLogConfig) (strand.IncomingMiddleware, strand.OutgoingMiddleware) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	incoming := func(_ context.Context, req *strand.Request) (*strand.Request, *strand.Response, error) {
		req.Values[startTimeValuesKey] = time.Now()
		return req, nil, nil
	}

	outgoing := func(ctx context.Context, req *strand.Request, resp *strand.Response) (*strand.Response, error) {
		attrs := []any{
			slog.String("method", req.Method),
			slog.String("path", req.Path),
			slog.Int("status", resp.Status),
			slog.Int("size", len(resp.Content)),
		}

		if start, ok := req.Values[startTimeValuesKey].(time.Time); ok {
			attrs = append(attrs, slog.Duration("duration", time.Since(start)))
		}
		if id := RequestIDFrom(req); id != "" {
			attrs = append(attrs, slog.String("request_id", id))
		}

		logger.Log(ctx, cfg.Level, "request", attrs...)
		return resp, nil
	}

	return incoming, outgoing
}
