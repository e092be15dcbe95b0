package strand

import (
	"fmt"
	"regexp"
	"strings"
)

// pathTemplate is a compiled ":name" route template. Compilation
// happens once at registration time; matching never recompiles.
type pathTemplate struct {
	// template is the original template string.
	template string
	// regexp is the anchored matcher derived from the template.
	regexp *regexp.Regexp
	// segments is the number of slash-delimited template segments.
	segments int
	// params are the parameter names in segment order.
	params []string
}

// hasParams reports whether a path contains a ":name" segment and must
// be compiled as a template rather than matched literally.
func hasParams(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, ":") {
			return true
		}
	}
	return false
}

// compileTemplate turns a "/api/:action" style template into an
// anchored matcher. Every ":name" segment becomes a non-slash capture
// group; the ordered parameter names are recorded for binding.
func compileTemplate(tpl string) (*pathTemplate, error) {
	segs := strings.Split(tpl, "/")

	var (
		pattern strings.Builder
		params  []string
		seen    = make(map[string]bool)
	)

	pattern.WriteByte('^')
	for i, seg := range segs {
		if i > 0 {
			pattern.WriteByte('/')
		}

		if !strings.HasPrefix(seg, ":") {
			pattern.WriteString(regexp.QuoteMeta(seg))
			continue
		}

		name := seg[1:]
		if name == "" {
			return nil, fmt.Errorf("strand: missing parameter name in template %q", tpl)
		}
		if seen[name] {
			return nil, fmt.Errorf("strand: duplicated parameter %q in template %q", name, tpl)
		}
		seen[name] = true

		params = append(params, name)
		pattern.WriteString("([^/]*)")
	}
	pattern.WriteByte('$')

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("strand: invalid template %q: %w", tpl, err)
	}

	return &pathTemplate{
		template: tpl,
		regexp:   re,
		segments: len(segs),
		params:   params,
	}, nil
}

// match binds the template against a concrete path. The path must have
// the same segment count as the template and every parameter must
// capture a non-empty value.
//
// The second return reports whether the shape matched at all; the third
// reports that it matched but a parameter captured an empty value, which
// invalidates the whole match.
func (t *pathTemplate) match(path string) (vars map[string]string, ok, emptyCapture bool) {
	if strings.Count(path, "/") != t.segments-1 {
		return nil, false, false
	}

	m := t.regexp.FindStringSubmatch(path)
	if m == nil {
		return nil, false, false
	}

	vars = make(map[string]string, len(t.params))
	for i, name := range t.params {
		value := m[i+1]
		if value == "" {
			return nil, false, true
		}
		vars[name] = value
	}
	return vars, true, false
}
