package strand

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
)

// App owns the route table, middleware chains, and fallback handler of
// one application. Instances are independently constructible; there is
// no process-wide registry.
//
// All registration must happen at setup time. Once serving starts the
// App is read-only and safe to share across concurrently dispatched
// requests without locking.
type App struct {
	routes   *routeTable
	incoming []IncomingMiddleware
	outgoing []OutgoingMiddleware
	fallback FallbackHandler
}

// New returns an empty App.
func New() *App {
	return &App{routes: newRouteTable()}
}

// RouteOption configures an optional aspect of a route at registration.
type RouteOption func(*route)

// WithSchema attaches a validation schema to the route. Requests that
// fail the schema take the fallback path.
func WithSchema(s *Schema) RouteOption {
	return func(r *route) { r.schema = s }
}

// Route registers a handler for a method and path. A path containing
// ":name" segments is parameterized and compiled once at registration;
// any other path is matched literally. Registering the same literal
// (method, path) twice is an error.
func (a *App) Route(method, path string, h Handler, opts ...RouteOption) error {
	method = strings.ToUpper(method)
	if !knownMethods[method] {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if h == nil {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, method, path)
	}

	r := &route{method: method, path: path, handler: h}
	for _, opt := range opts {
		opt(r)
	}

	if hasParams(path) {
		tpl, err := compileTemplate(path)
		if err != nil {
			return err
		}
		r.kind = kindParam
		r.tpl = tpl
		a.routes.addParam(r)
		return nil
	}

	r.kind = kindExact
	return a.routes.addExact(r)
}

// RouteRegexp registers a handler for paths fully consumed by pattern.
// A pattern that merely matches a substring of the path does not match
// the route. Capture groups are exposed in order on Request.Captures.
func (a *App) RouteRegexp(method string, pattern *regexp.Regexp, h Handler, opts ...RouteOption) error {
	method = strings.ToUpper(method)
	if !knownMethods[method] {
		return fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if pattern == nil {
		return errors.New("strand: nil pattern")
	}
	if h == nil {
		return fmt.Errorf("%w: %s %s", ErrNilHandler, method, pattern)
	}

	r := &route{kind: kindRegexp, method: method, pattern: pattern, handler: h}
	for _, opt := range opts {
		opt(r)
	}
	a.routes.addRegexp(r)
	return nil
}

// Serve mounts a folder under a URL prefix. Static routes match GET
// requests only and have the lowest lookup precedence. File reads go
// through fsys, the file-I/O collaborator.
func (a *App) Serve(prefix string, fsys fs.FS) {
	a.routes.addStatic(&route{kind: kindStatic, method: http.MethodGet, prefix: prefix, fsys: fsys})
}

// StaticMount is one registered (URL prefix, folder) pair.
type StaticMount struct {
	Prefix string
	FS     fs.FS
}

// StaticMounts returns the registered static mounts in registration
// order, for transports that serve files themselves.
func (a *App) StaticMounts() []StaticMount {
	mounts := make([]StaticMount, 0, len(a.routes.statics))
	for _, r := range a.routes.statics {
		mounts = append(mounts, StaticMount{Prefix: r.prefix, FS: r.fsys})
	}
	return mounts
}

// Get registers a GET route.
func (a *App) Get(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodGet, path, h, opts...)
}

// Head registers a HEAD route.
func (a *App) Head(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodHead, path, h, opts...)
}

// Post registers a POST route.
func (a *App) Post(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodPost, path, h, opts...)
}

// Put registers a PUT route.
func (a *App) Put(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodPut, path, h, opts...)
}

// Patch registers a PATCH route.
func (a *App) Patch(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodPatch, path, h, opts...)
}

// Delete registers a DELETE route.
func (a *App) Delete(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodDelete, path, h, opts...)
}

// Options registers an OPTIONS route.
func (a *App) Options(path string, h Handler, opts ...RouteOption) error {
	return a.Route(http.MethodOptions, path, h, opts...)
}

// UseIncoming appends incoming middleware. The chain is append-only and
// evaluated strictly in registration order before route resolution.
func (a *App) UseIncoming(mw ...IncomingMiddleware) {
	a.incoming = append(a.incoming, mw...)
}

// UseOutgoing appends outgoing middleware. The chain is append-only and
// evaluated strictly in registration order after the handler settles.
func (a *App) UseOutgoing(mw ...OutgoingMiddleware) {
	a.outgoing = append(a.outgoing, mw...)
}

// Fallback installs the single handler invoked when no route matches,
// parameter binding or a schema check fails, or a handler errors.
func (a *App) Fallback(h FallbackHandler) {
	a.fallback = h
}
