// Package strand implements a minimal HTTP request-dispatch layer:
// route registration and precedence-ordered lookup, URL-parameter
// binding, body/query/cookie parsing, declarative schema validation, an
// ordered middleware pipeline, and response normalization.
//
// The engine is transport-agnostic. A transport hands it a RawRequest
// (method, URL, headers, raw body bytes) and receives exactly one
// Response per request; the bundled http.Handler adapter covers the
// net/http case.
//
// # Routes
//
// An App holds four kinds of routes. Literal paths match exactly, paths
// with ":name" segments are compiled into parameter binders at
// registration time, regular expressions match when they consume the
// whole path, and static mounts serve files under a prefix:
//
//	app := strand.New()
//	app.Get("/", func(ctx context.Context, req *strand.Request) (any, error) {
//	    return "Hello, World!", nil
//	})
//	app.Get("/hello/:name", func(ctx context.Context, req *strand.Request) (any, error) {
//	    return "Hello, " + req.Params["name"] + "!", nil
//	})
//	app.RouteRegexp(http.MethodGet, regexp.MustCompile(`/files/(\d+)`), fileHandler)
//	app.Serve("/static", os.DirFS("./public"))
//
// Lookup precedence for a given method and path is fixed: exact match
// first, then parameterized routes in registration order, then regexp
// routes in registration order, then static mounts (GET only), then the
// fallback. A parameterized route only matches a path with the same
// segment count, and an empty parameter value invalidates the match.
//
// Registering the same literal (method, path) twice returns
// ErrDuplicateRoute. Parameterized and regexp routes may overlap; the
// first registered wins.
//
// # Request model
//
// Handlers receive a fully bound *Request: decoded query and cookie
// maps, parsed body fields (JSON, URL-encoded, or multipart), uploaded
// files with their exact payload bytes, bound path parameters, and
// regexp captures. The Values map is a side channel for middleware to
// pass request-scoped data downstream.
//
// # Responses
//
// A handler may return a string (served as text/html; charset=UTF-8), a
// []byte (no forced content type), or a *Response for full control:
//
//	return &strand.Response{
//	    Status:  http.StatusCreated,
//	    Cookies: map[string]string{"session": token},
//	    Content: payload,
//	}, nil
//
// Cookies are appended as Set-Cookie headers without replacing existing
// ones. A response with Redirect set defaults to 301; otherwise an
// unset status defaults to 200 on the success path and 404 on the
// fallback path.
//
// # Middleware
//
// Incoming middleware runs before route resolution and may replace the
// request or short-circuit with an early response. Outgoing middleware
// runs after the handler settles, in registration order, and sees the
// request alongside the accumulating response:
//
//	app.UseIncoming(func(ctx context.Context, req *strand.Request) (*strand.Request, *strand.Response, error) {
//	    req.Values["start"] = time.Now()
//	    return req, nil, nil
//	})
//	app.UseOutgoing(func(ctx context.Context, req *strand.Request, resp *strand.Response) (*strand.Response, error) {
//	    resp.Headers.Set("X-Frame-Options", "DENY")
//	    return resp, nil
//	})
//
// # Schemas
//
// Routes accept a declarative Schema of predicates over the query,
// body, cookie, parameter, and header scopes. All predicates must pass;
// a failing schema takes the fallback path:
//
//	app.Post("/login", loginHandler, strand.WithSchema(&strand.Schema{
//	    Body: []strand.Predicate{
//	        strand.MustExist("user"),
//	        strand.ValueMustBeOfType("user", "string"),
//	    },
//	}))
//
// # Fallback
//
// A single fallback handler covers missed routes, failed parameter
// bindings, failed schema checks, and handler errors, distinguished by
// a Reason value:
//
//	app.Fallback(func(ctx context.Context, req *strand.Request, reason strand.Reason, err error) (any, error) {
//	    if reason == strand.ReasonHandlerError {
//	        return "something broke", nil
//	    }
//	    return "no such page: " + req.Path, nil
//	})
//
// Without a fallback, a miss yields 404 "Not found." and a handler
// error yields 500 with the stringified error. Every request receives
// exactly one terminal response; handler panics are recovered and never
// crash the process.
//
// # Serving
//
// App implements http.Handler:
//
//	http.ListenAndServe(":8080", app)
package strand
