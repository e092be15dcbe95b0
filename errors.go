package strand

import "errors"

// ErrDuplicateRoute is returned when an exact route is registered twice
// for the same method and path.
var ErrDuplicateRoute = errors.New("strand: duplicate route")

// ErrUnknownMethod is returned when a route is registered with a method
// token outside RFC 9110 Section 9.
var ErrUnknownMethod = errors.New("strand: unknown method")

// ErrNilHandler is returned when a route is registered without a
// handler.
var ErrNilHandler = errors.New("strand: nil handler")

// knownMethods are the method tokens defined by RFC 9110 Section 9
// plus PATCH (RFC 5789).
var knownMethods = map[string]bool{
	"GET":     true,
	"HEAD":    true,
	"POST":    true,
	"PUT":     true,
	"DELETE":  true,
	"CONNECT": true,
	"OPTIONS": true,
	"TRACE":   true,
	"PATCH":   true,
}
