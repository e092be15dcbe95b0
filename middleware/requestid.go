package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/strandhttp/strand"
)

// requestIDValuesKey is the Request.Values key the incoming half stores
// the resolved ID under.
const requestIDValuesKey = "middleware.request_id"

// RequestIDFrom returns the request ID resolved by the RequestID
// middleware, or an empty string if none is present.
func RequestIDFrom(req *strand.Request) string {
	if id, ok := req.Values[requestIDValuesKey].(string); ok {
		return id
	}
	return ""
}

// RequestIDConfig configures the Request ID middleware behaviour.
type RequestIDConfig struct {
	// HeaderName overrides the header used to propagate the request ID.
	// Defaults to "X-Request-ID" when empty.
	HeaderName string

	// GenerateFunc is an optional callback that returns a new unique ID.
	// It receives the current request, allowing ID generation based on
	// request data. Defaults to GenerateUUIDv4.
	GenerateFunc func(req *strand.Request) string

	// TrustIncoming, when true, reuses an existing request ID from the
	// incoming request header instead of generating a new one.
	TrustIncoming bool
}

// RequestID returns the incoming middleware that resolves an ID for
// every request and the outgoing middleware that reflects it on the
// response. The ID is visible to handlers via the request header, the
// Values side channel, and RequestIDFrom.
func RequestID(cfg RequestIDConfig) (strand.IncomingMiddleware, strand.OutgoingMiddleware) {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = "X-Request-ID"
	}

	generate := cfg.GenerateFunc
	if generate == nil {
		generate = GenerateUUIDv4
	}

	trustIncoming := cfg.TrustIncoming

	incoming := func(_ context.Context, req *strand.Request) (*strand.Request, *strand.Response, error) {
		id := ""
		if trustIncoming {
			id = req.Headers[headerName]
		}
		if id == "" {
			id = generate(req)
		}
		if id != "" {
			req.Headers[headerName] = id
			req.Values[requestIDValuesKey] = id
		}
		return req, nil, nil
	}

	outgoing := func(_ context.Context, req *strand.Request, resp *strand.Response) (*strand.Response, error) {
		if id := RequestIDFrom(req); id != "" {
			if resp.Headers == nil {
				resp.Headers = map[string][]string{}
			}
			resp.Headers.Set(headerName, id)
		}
		return resp, nil
	}

	return incoming, outgoing
}

// GenerateUUIDv4 returns a new UUID v4 string.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.4
func GenerateUUIDv4(_ *strand.Request) string {
	return uuid.New().String()
}

// GenerateUUIDv7 returns a new UUID v7 string. UUIDs are time-ordered:
// IDs generated later sort lexicographically after earlier ones.
//
// Spec reference: https://www.rfc-editor.org/rfc/rfc9562#section-5.7
func GenerateUUIDv7(_ *strand.Request) string {
	return uuid.Must(uuid.NewV7()).String()
}
