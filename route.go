package strand

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
)

// Handler processes a fully bound request. The returned value may be a
// string, a []byte, a *Response, or nil; anything else is rejected at
// normalization time. A non-nil error transitions the pipeline to its
// error state instead of producing the returned value.
type Handler func(ctx context.Context, req *Request) (any, error)

// routeKind tags the four route variants.
type routeKind int

const (
	kindExact routeKind = iota
	kindParam
	kindRegexp
	kindStatic
)

// route is one registered (method, path-or-pattern) → handler binding.
// Routes are created at setup time, never mutated afterwards, and only
// looked up while serving.
type route struct {
	kind    routeKind
	method  string
	path    string
	tpl     *pathTemplate
	pattern *regexp.Regexp
	prefix  string
	fsys    fs.FS
	handler Handler
	schema  *Schema
}

// routeTable holds the registered routes of one App, keyed by method.
// Parameterized and regexp routes may overlap; they are disambiguated
// by registration order at lookup time.
type routeTable struct {
	exact   map[string]map[string]*route
	params  map[string][]*route
	regexps map[string][]*route
	statics []*route
}

func newRouteTable() *routeTable {
	return &routeTable{
		exact:   make(map[string]map[string]*route),
		params:  make(map[string][]*route),
		regexps: make(map[string][]*route),
	}
}

// addExact registers a literal-path route. Within one method at most
// one exact route may exist per path.
func (t *routeTable) addExact(r *route) error {
	byPath := t.exact[r.method]
	if byPath == nil {
		byPath = make(map[string]*route)
		t.exact[r.method] = byPath
	}

	if _, dup := byPath[r.path]; dup {
		return fmt.Errorf("%w: %s %s", ErrDuplicateRoute, r.method, r.path)
	}

	byPath[r.path] = r
	return nil
}

func (t *routeTable) addParam(r *route) {
	t.params[r.method] = append(t.params[r.method], r)
}

func (t *routeTable) addRegexp(r *route) {
	t.regexps[r.method] = append(t.regexps[r.method], r)
}

func (t *routeTable) addStatic(r *route) {
	t.statics = append(t.statics, r)
}

// resolved is the outcome of a successful route-table lookup.
type resolved struct {
	route    *route
	params   map[string]string
	captures []string
}

// lookup resolves a method and path strictly in precedence order:
// exact match, then parameterized routes in registration order, then
// regexp routes in registration order, then static mounts (GET only).
//
// On a miss the returned reason distinguishes a plain miss from a
// parameterized candidate that matched in shape but would have bound an
// empty parameter value.
func (t *routeTable) lookup(method, path string) (resolved, Reason, bool) {
	if r, ok := t.exact[method][path]; ok {
		return resolved{route: r}, ReasonNone, true
	}

	var bindingFailed bool
	for _, r := range t.params[method] {
		vars, ok, empty := r.tpl.match(path)
		if ok {
			return resolved{route: r, params: vars}, ReasonNone, true
		}
		if empty {
			bindingFailed = true
		}
	}

	for _, r := range t.regexps[method] {
		if caps, ok := fullMatch(r.pattern, path); ok {
			return resolved{route: r, captures: caps}, ReasonNone, true
		}
	}

	if method == http.MethodGet {
		for _, r := range t.statics {
			if strings.HasPrefix(path, r.prefix) {
				return resolved{route: r}, ReasonNone, true
			}
		}
	}

	if bindingFailed {
		return resolved{}, ReasonBindingFailed, false
	}
	return resolved{}, ReasonNotFound, false
}

// fullMatch reports whether re consumes the entire path, not merely a
// substring of it, returning the capture groups on success.
func fullMatch(re *regexp.Regexp, path string) ([]string, bool) {
	m := re.FindStringSubmatch(path)
	if m == nil || m[0] != path {
		return nil, false
	}
	if len(m) > 1 {
		return m[1:], true
	}
	return nil, true
}
