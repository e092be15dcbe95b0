package strand

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

// defaultNotFoundBody is the body synthesized when no fallback handler
// is installed or the fallback declines to respond.
const defaultNotFoundBody = "Not found."

// Reason classifies why the fallback path was taken.
type Reason int

const (
	// ReasonNone marks a response produced on the success path.
	ReasonNone Reason = iota

	// ReasonNotFound marks a request no route matched.
	ReasonNotFound

	// ReasonBindingFailed marks a parameterized route that matched in
	// shape but would have bound an empty parameter value.
	ReasonBindingFailed

	// ReasonSchemaFailed marks a route whose schema predicate failed.
	ReasonSchemaFailed

	// ReasonHandlerError marks a handler or middleware that returned an
	// error or panicked.
	ReasonHandlerError
)

// String returns the reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNotFound:
		return "not_found"
	case ReasonBindingFailed:
		return "binding_failed"
	case ReasonSchemaFailed:
		return "schema_failed"
	case ReasonHandlerError:
		return "handler_error"
	default:
		return "unknown"
	}
}

// IncomingMiddleware transforms the request before route resolution.
// Returning a replacement request feeds the next stage; returning a
// non-nil response short-circuits the pipeline and skips straight to
// the outgoing chain; returning an error aborts the request as a
// handler failure.
type IncomingMiddleware func(ctx context.Context, req *Request) (*Request, *Response, error)

// OutgoingMiddleware transforms the response after the handler (or
// fallback) has produced it. It sees the original request alongside the
// accumulating response and may replace the response wholesale. The
// response arrives already finalized: cookies appended, redirect and
// default status applied. Header changes should go through
// Response.Headers directly.
type OutgoingMiddleware func(ctx context.Context, req *Request, resp *Response) (*Response, error)

// FallbackHandler handles missed routes, failed bindings, failed schema
// checks, and handler errors. err is non-nil only for
// ReasonHandlerError. Returning nil content lets the engine synthesize
// the default response for the reason.
type FallbackHandler func(ctx context.Context, req *Request, reason Reason, err error) (any, error)

// Dispatch runs one raw request through the pipeline and returns
// exactly one finalized response: incoming middleware in registration
// order, route resolution, schema check and parameter binding, handler
// invocation, then outgoing middleware in registration order, with the
// fallback covering every miss. Handler errors and panics become 500
// responses; Dispatch itself never panics. The single return value is
// the single-fire guard: there is no second response to emit.
func (a *App) Dispatch(ctx context.Context, raw RawRequest) *Response {
	req := newRequest(raw)
	resp, fellBack := a.run(ctx, req)

	// finishOutgoing finalizes before the outgoing chain so middleware
	// observes the real status; a middleware that swapped in a fresh
	// response is finalized here instead.
	if resp.Status == 0 {
		resp.finalize(fellBack)
	} else {
		resp.dropInvalidHeaders()
	}
	return resp
}

// run drives the request state machine. The boolean reports whether the
// response came from the fallback path, which selects the 404 default
// status.
func (a *App) run(ctx context.Context, req *Request) (resp *Response, fellBack bool) {
	defer func() {
		if v := recover(); v != nil {
			resp, fellBack = a.fail(ctx, req, fmt.Errorf("panic: %v", v))
		}
	}()

	for _, mw := range a.incoming {
		next, early, err := mw(ctx, req)
		if err != nil {
			return a.fail(ctx, req, err)
		}
		if early != nil {
			return a.finishOutgoing(ctx, req, early, false)
		}
		if next != nil {
			req = next
		}
	}

	res, reason, found := a.routes.lookup(req.Method, req.Path)
	if !found {
		return a.miss(ctx, req, reason)
	}

	if res.params != nil {
		req.Params = res.params
	}
	req.Captures = res.captures

	if res.route.kind == kindStatic {
		return a.serveStatic(ctx, req, res.route)
	}

	ok, err := res.route.schema.validate(ctx, req)
	if err != nil {
		return a.fail(ctx, req, err)
	}
	if !ok {
		return a.miss(ctx, req, ReasonSchemaFailed)
	}

	value, err := res.route.handler(ctx, req)
	if err != nil {
		return a.fail(ctx, req, err)
	}

	resp, err = normalizeResponse(value)
	if err != nil {
		return a.fail(ctx, req, err)
	}
	return a.finishOutgoing(ctx, req, resp, false)
}

// miss routes a not-found-family condition through the fallback
// handler, synthesizing the default 404 body when no fallback is
// installed or it declines.
func (a *App) miss(ctx context.Context, req *Request, reason Reason) (*Response, bool) {
	if a.fallback != nil {
		value, err := a.fallback(ctx, req, reason, nil)
		if err != nil {
			return a.fail(ctx, req, err)
		}
		if value != nil {
			if resp, err := normalizeResponse(value); err == nil {
				return a.finishOutgoing(ctx, req, resp, true)
			}
		}
	}

	return a.finishOutgoing(ctx, req, &Response{Content: []byte(defaultNotFoundBody)}, true)
}

// fail handles a handler, middleware, or predicate failure. The
// fallback handler may intercept it; otherwise the error is surfaced as
// a 500 response carrying the stringified error. The process never
// crashes on a handler error.
func (a *App) fail(ctx context.Context, req *Request, failure error) (*Response, bool) {
	if a.fallback != nil {
		value, err := a.fallback(ctx, req, ReasonHandlerError, failure)
		if err == nil && value != nil {
			if resp, nerr := normalizeResponse(value); nerr == nil {
				if resp.Status == 0 {
					resp.Status = http.StatusInternalServerError
				}
				return a.finishOutgoing(ctx, req, resp, false)
			}
		}
	}

	resp := &Response{
		Status:  http.StatusInternalServerError,
		Content: []byte(failure.Error()),
	}
	return a.finishOutgoing(ctx, req, resp, false)
}

// finishOutgoing finalizes the response (cookies, redirect, default
// status) and then applies the outgoing middleware chain in
// registration order, so middleware inspects the response in its wire
// shape. A middleware error replaces the response with a 500; the chain
// is not re-entered for it.
func (a *App) finishOutgoing(ctx context.Context, req *Request, resp *Response, fellBack bool) (*Response, bool) {
	resp.finalize(fellBack)
	for _, mw := range a.outgoing {
		next, err := mw(ctx, req, resp)
		if err != nil {
			return &Response{
				Status:  http.StatusInternalServerError,
				Content: []byte(err.Error()),
			}, false
		}
		if next != nil {
			resp = next
		}
	}
	return resp, fellBack
}

// serveStatic reads the mounted file behind a static route. A missing
// or invalid file path folds into the not-found fallback.
func (a *App) serveStatic(ctx context.Context, req *Request, r *route) (*Response, bool) {
	name := strings.TrimPrefix(req.Path, r.prefix)
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		name = "index.html"
	}

	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return a.miss(ctx, req, ReasonNotFound)
	}

	resp := &Response{Content: data}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		resp.header().Set("Content-Type", ct)
	}
	return a.finishOutgoing(ctx, req, resp, false)
}
