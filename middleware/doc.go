// Package middleware provides ready-made pipeline middleware for the
// strand engine.
//
// Middleware that needs to observe both ends of a request (request ID,
// access logging, metrics) comes as a paired incoming/outgoing
// constructor; register both halves on the same App:
//
//	in, out := middleware.RequestID(middleware.RequestIDConfig{})
//	app.UseIncoming(in)
//	app.UseOutgoing(out)
//
// # Request ID
//
// RequestID generates or propagates an X-Request-ID header and makes it
// available to handlers via RequestIDFrom.
//
// # Access Log
//
// AccessLog writes one structured slog line per completed request with
// the method, path, status, and duration.
//
// # Metrics
//
// Metrics records a Prometheus request counter (by method and status)
// and a duration histogram (by method). The namespace, registry,
// buckets, and constant labels are configurable:
//
//	in, out := middleware.Metrics(middleware.WithNamespace("myapp"))
//	app.UseIncoming(in)
//	app.UseOutgoing(out)
//
// # Security Headers
//
// SecurityHeaders sets common security response headers
// (X-Content-Type-Options, X-Frame-Options, Referrer-Policy) on every
// response leaving the pipeline.
package middleware
