package strand

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/url"
	"strings"
)

// parseBody turns raw request bytes plus a content-type hint into a
// field map and extracted file attachments. Decoding is attempted in
// order: strict JSON, multipart (when a boundary can be determined),
// then URL-encoded form data. An empty body yields two empty maps.
func parseBody(body []byte, contentType string) (map[string]any, map[string]File) {
	fields := make(map[string]any)
	files := make(map[string]File)

	if len(body) == 0 {
		return fields, files
	}

	if looksLikeJSON(contentType, body) && decodeJSONBody(body, fields) {
		return fields, files
	}

	if boundary, ok := multipartBoundary(contentType, body); ok {
		parseMultipart(body, boundary, fields, files)
		return fields, files
	}

	decodeFormBody(body, fields)
	return fields, files
}

// looksLikeJSON reports whether the body should be tried as JSON, by
// declared content type or by sniffing the first non-space byte.
func looksLikeJSON(contentType string, body []byte) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
			return true
		}
	}

	trimmed := bytes.TrimLeft(body, " \t\r\n")
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

// decodeJSONBody strictly decodes a single JSON object into fields.
// Trailing data after the first value, or a non-object top-level value,
// counts as failure so the caller can fall through to other formats.
func decodeJSONBody(body []byte, fields map[string]any) bool {
	dec := json.NewDecoder(bytes.NewReader(body))

	var value any
	if err := dec.Decode(&value); err != nil {
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return false
	}

	object, ok := value.(map[string]any)
	if !ok {
		return false
	}

	for key, val := range object {
		fields[key] = val
	}
	return true
}

// multipartBoundary determines the part boundary for a multipart body.
// The Content-Type boundary parameter (RFC 2046 Section 5.1.1) is
// authoritative. Bodies that arrive without a usable header are sniffed
// by their first "--boundary" line, but only when a name="..." part
// marker is present somewhere in the payload.
func multipartBoundary(contentType string, body []byte) (string, bool) {
	if mediaType, params, err := mime.ParseMediaType(contentType); err == nil {
		if strings.HasPrefix(mediaType, "multipart/") {
			if b := params["boundary"]; b != "" {
				return b, true
			}
		}
	}

	if !bytes.Contains(body, []byte(`name="`)) || !bytes.HasPrefix(body, []byte("--")) {
		return "", false
	}

	line := body
	if i := bytes.IndexByte(line, '\n'); i != -1 {
		line = line[:i]
	}
	line = bytes.TrimRight(line, "\r")
	if len(line) <= 2 {
		return "", false
	}
	return string(line[2:]), true
}

// parseMultipart scans the raw body byte-for-byte for "--boundary"
// delimiters and splits out each part. Parts carrying a filename become
// file attachments whose Data is exactly the bytes between the part
// header and the next delimiter; parts without a filename are plain
// fields. A part with no locatable header/payload split or no name is
// dropped. When a name repeats, the last declared part wins.
func parseMultipart(body []byte, boundary string, fields map[string]any, files map[string]File) {
	delim := []byte("--" + boundary)

	segments := bytes.Split(body, delim)
	if len(segments) < 2 {
		return
	}

	// segments[0] is the preamble; the closing "--boundary--" leaves a
	// final segment starting with "--".
	for _, seg := range segments[1:] {
		if bytes.HasPrefix(seg, []byte("--")) {
			break
		}

		seg = trimLeadingCRLF(seg)
		header, payload, ok := splitPartHeader(seg)
		if !ok {
			continue
		}

		name := quotedParam(header, `name="`)
		if name == "" {
			continue
		}

		payload = trimTrailingCRLF(payload)

		if filename := quotedParam(header, `filename="`); filename != "" {
			files[name] = File{
				Filename:    filename,
				ContentType: partContentType(header),
				Data:        payload,
			}
			continue
		}

		fields[name] = string(payload)
	}
}

// splitPartHeader cuts a part into its header block and payload at the
// first blank line.
func splitPartHeader(seg []byte) (header string, payload []byte, ok bool) {
	if i := bytes.Index(seg, []byte("\r\n\r\n")); i != -1 {
		return string(seg[:i]), seg[i+4:], true
	}
	if i := bytes.Index(seg, []byte("\n\n")); i != -1 {
		return string(seg[:i]), seg[i+2:], true
	}
	return "", nil, false
}

// quotedParam extracts a quoted parameter value following marker, e.g.
// `name="` in a Content-Disposition line (RFC 7578 Section 4.2).
func quotedParam(header, marker string) string {
	i := strings.Index(header, marker)
	if i == -1 {
		return ""
	}
	rest := header[i+len(marker):]
	j := strings.IndexByte(rest, '"')
	if j == -1 {
		return ""
	}
	return rest[:j]
}

// partContentType returns the declared Content-Type of a part, if any.
func partContentType(header string) string {
	for _, line := range strings.Split(header, "\n") {
		line = strings.TrimRight(line, "\r")
		if value, ok := strings.CutPrefix(line, "Content-Type:"); ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func trimLeadingCRLF(b []byte) []byte {
	b = bytes.TrimPrefix(b, []byte("\r"))
	return bytes.TrimPrefix(b, []byte("\n"))
}

func trimTrailingCRLF(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte("\n"))
	return bytes.TrimSuffix(b, []byte("\r"))
}

// decodeFormBody decodes application/x-www-form-urlencoded fields.
// Pairs that fail to decode are skipped; the rest are kept.
func decodeFormBody(body []byte, fields map[string]any) {
	values, _ := url.ParseQuery(string(body))
	for key, vals := range values {
		if len(vals) > 0 {
			fields[key] = vals[0]
		}
	}
}
