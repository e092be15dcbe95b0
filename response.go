package strand

import (
	"fmt"
	"net/http"
	"sort"

	"golang.org/x/net/http/httpguts"
)

// Response is the structured result that leaves the pipeline: a status,
// a header map, and a body payload. Handlers may return one directly or
// return a bare string/[]byte and let normalization wrap it.
type Response struct {
	// Status overrides the pipeline default: 200 on the success path,
	// 404 on the fallback path, 301 when Redirect is set.
	Status int

	// Headers are the declared response headers.
	Headers http.Header

	// Cookies are appended as Set-Cookie headers in name order, never
	// replacing existing Set-Cookie values.
	Cookies map[string]string

	// Redirect, when non-empty, becomes the Location header.
	Redirect string

	// Content is the response body.
	Content []byte
}

// header returns the header map, allocating it on first use.
func (r *Response) header() http.Header {
	if r.Headers == nil {
		r.Headers = make(http.Header)
	}
	return r.Headers
}

// normalizeResponse converts a raw handler return into a Response.
// Strings imply an HTML content type; byte slices carry no forced
// content type; Response values pass through unchanged; nil becomes an
// empty response.
func normalizeResponse(value any) (*Response, error) {
	switch body := value.(type) {
	case nil:
		return &Response{}, nil
	case string:
		resp := &Response{Content: []byte(body)}
		resp.header().Set("Content-Type", "text/html; charset=UTF-8")
		return resp, nil
	case []byte:
		return &Response{Content: body}, nil
	case *Response:
		if body == nil {
			return &Response{}, nil
		}
		return body, nil
	case Response:
		return &body, nil
	default:
		return nil, fmt.Errorf("strand: unsupported handler return type %T", value)
	}
}

// finalize applies the cookie, redirect, and default-status rules and
// drops header entries that are not valid HTTP fields. fallback selects
// the 404 default used on the fallback path.
func (r *Response) finalize(fallback bool) {
	if len(r.Cookies) > 0 {
		h := r.header()
		names := make([]string, 0, len(r.Cookies))
		for name := range r.Cookies {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			h.Add("Set-Cookie", name+"="+r.Cookies[name])
		}
	}

	if r.Redirect != "" {
		r.header().Set("Location", r.Redirect)
		if r.Status == 0 {
			r.Status = http.StatusMovedPermanently
		}
	}

	if r.Status == 0 {
		if fallback {
			r.Status = http.StatusNotFound
		} else {
			r.Status = http.StatusOK
		}
	}

	r.dropInvalidHeaders()
}

// dropInvalidHeaders removes entries that are not valid header field
// names or values per RFC 9110 Section 5.
func (r *Response) dropInvalidHeaders() {
	for name, values := range r.Headers {
		if !httpguts.ValidHeaderFieldName(name) {
			delete(r.Headers, name)
			continue
		}

		valid := values[:0]
		for _, value := range values {
			if httpguts.ValidHeaderFieldValue(value) {
				valid = append(valid, value)
			}
		}

		if len(valid) == 0 {
			delete(r.Headers, name)
			continue
		}
		r.Headers[name] = valid
	}
}

// write emits the response to a ResponseWriter. The status line fires
// before any body bytes; callers must invoke write at most once.
func (r *Response) write(w http.ResponseWriter) {
	for name, values := range r.Headers {
		for _, value := range values {
			w.Header().Add(name, value)
		}
	}
	w.WriteHeader(r.Status)
	if len(r.Content) > 0 {
		w.Write(r.Content) //nolint:errcheck // transport write failures are not recoverable here
	}
}
