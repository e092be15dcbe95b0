package middleware

import (
	"context"
	"errors"

	"github.com/strandhttp/strand"
)

// ErrInvalidFrameOption is returned when SecurityHeadersConfig.FrameOption
// is not one of the valid values: "DENY", "SAMEORIGIN", or empty string.
var ErrInvalidFrameOption = errors.New("security headers: frame option must be DENY, SAMEORIGIN, or empty")

// SecurityHeadersConfig configures the Security Headers middleware
// behaviour.
type SecurityHeadersConfig struct {
	// DisableContentTypeNosniff disables the X-Content-Type-Options:
	// nosniff header. The header is set by default (when false).
	DisableContentTypeNosniff bool

	// FrameOption sets the X-Frame-Options header value.
	// Valid values are "DENY" and "SAMEORIGIN". Defaults to "DENY".
	FrameOption string

	// ReferrerPolicy sets the Referrer-Policy header value.
	// Defaults to "strict-origin-when-cross-origin".
	ReferrerPolicy string
}

// SecurityHeaders returns outgoing middleware that sets common security
// response headers on every response leaving the pipeline.
//
// It returns ErrInvalidFrameOption if FrameOption is set to a value
// other than "DENY", "SAMEORIGIN", or empty string.
func SecurityHeaders(cfg SecurityHeadersConfig) (strand.OutgoingMiddleware, error) {
	if cfg.FrameOption != "" && cfg.FrameOption != "DENY" && cfg.FrameOption != "SAMEORIGIN" {
		return nil, ErrInvalidFrameOption
	}

	if cfg.FrameOption == "" {
		cfg.FrameOption = "DENY"
	}
	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	return func(_ context.Context, _ *strand.Request, resp *strand.Response) (*strand.Response, error) {
		if resp.Headers == nil {
			resp.Headers = map[string][]string{}
		}
		if !cfg.DisableContentTypeNosniff {
			resp.Headers.Set("X-Content-Type-Options", "nosniff")
		}
		resp.Headers.Set("X-Frame-Options", cfg.FrameOption)
		resp.Headers.Set("Referrer-Policy", cfg.ReferrerPolicy)
		return resp, nil
	}, nil
}
