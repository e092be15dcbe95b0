package strand

import "strings"

// RawRequest is the normalized inbound-request descriptor a transport
// hands to the engine: method token, request URL (path plus optional
// query), header map, and the unparsed body bytes. Header-line
// tokenizing of the wire stream is the transport's job.
type RawRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// File is an uploaded file extracted from a multipart body. Data holds
// exactly the payload bytes of the part, sliced from the raw body.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Request is the structured view of one inbound request. It is built
// once by the parsing stage, may be replaced by incoming middleware,
// and is read-only by the time it reaches the handler. A Request is
// owned by a single in-flight dispatch and never shared across
// concurrent requests.
type Request struct {
	// Method is the request method token (GET, POST, ...).
	Method string

	// Path is the URL path with the query component stripped.
	Path string

	// Headers is the raw header map as received from the transport.
	Headers map[string]string

	// Query holds the percent-decoded query parameters.
	Query map[string]string

	// Body holds the parsed body fields. Values are JSON-like:
	// string, float64, bool, nil, map[string]any, or []any.
	Body map[string]any

	// Cookies holds the Cookie header pairs. Values are kept verbatim,
	// without percent-decoding.
	Cookies map[string]string

	// Params holds the values bound from a parameterized route's
	// :name segments.
	Params map[string]string

	// Captures holds the capture groups of a matched regexp route,
	// in group order.
	Captures []string

	// Files holds uploaded files by field name.
	Files map[string]File

	// Values is a free-form side channel for middleware to attach
	// request-scoped data for later pipeline stages.
	Values map[string]any
}

// newRequest builds a Request from a raw descriptor: the query is split
// off the URL, cookies come from the Cookie header, and the body is
// parsed according to its content.
func newRequest(raw RawRequest) *Request {
	headers := raw.Headers
	if headers == nil {
		headers = make(map[string]string)
	}

	path := raw.URL
	if i := strings.IndexByte(path, '?'); i != -1 {
		path = path[:i]
	}

	fields, files := parseBody(raw.Body, headers["Content-Type"])

	return &Request{
		Method:  raw.Method,
		Path:    path,
		Headers: headers,
		Query:   parseQuery(raw.URL),
		Body:    fields,
		Cookies: parseCookies(headers["Cookie"]),
		Params:  make(map[string]string),
		Files:   files,
		Values:  make(map[string]any),
	}
}
