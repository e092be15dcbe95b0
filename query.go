package strand

import (
	"net/url"
	"strings"
)

// parseQuery extracts and decodes the query component of a request URL.
// Splits on the first '?', then applies standard key=value&... semantics
// with percent-decoding and the plus-as-space convention per
// RFC 3986 Section 3.4. A URL without a query yields an empty map.
// When a key repeats, the first value wins.
func parseQuery(rawURL string) map[string]string {
	out := make(map[string]string)

	i := strings.IndexByte(rawURL, '?')
	if i == -1 {
		return out
	}

	// ParseQuery returns the pairs it decoded even when a later pair is
	// malformed, so the error is deliberately ignored.
	values, _ := url.ParseQuery(rawURL[i+1:])
	for key, vals := range values {
		if len(vals) > 0 {
			out[key] = vals[0]
		}
	}

	return out
}

// parseCookies splits a Cookie header (RFC 6265 Section 4.2) into a
// name/value map. Pairs are separated by ';', names have leading
// whitespace trimmed, and the first '=' splits name from value.
// Values are kept verbatim, without percent-decoding. An absent header
// yields an empty map.
func parseCookies(header string) map[string]string {
	out := make(map[string]string)
	if header == "" {
		return out
	}

	for _, pair := range strings.Split(header, ";") {
		pair = strings.TrimLeft(pair, " \t")
		if pair == "" {
			continue
		}

		name, value, _ := strings.Cut(pair, "=")
		if name == "" {
			continue
		}
		out[name] = value
	}

	return out
}
