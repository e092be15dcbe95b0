package strand

import (
	"io"
	"net/http"
	"strings"
)

// ServeHTTP adapts the engine to net/http, so an App can be passed
// anywhere an http.Handler is accepted. The body is read fully, the raw
// descriptor is dispatched, and exactly one response is written back.
//
// If the client disconnects mid-pipeline, the final write becomes a
// no-op at the transport; the pipeline still produces its single
// response.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		switch {
		case len(values) == 1:
			headers[name] = values[0]
		case len(values) > 1 && name == "Cookie":
			// Multiple Cookie lines fold into one per RFC 6265 Section 5.4.
			headers[name] = strings.Join(values, "; ")
		case len(values) > 1:
			headers[name] = values[0]
		}
	}

	resp := a.Dispatch(r.Context(), RawRequest{
		Method:  r.Method,
		URL:     r.URL.RequestURI(),
		Headers: headers,
		Body:    body,
	})
	resp.write(w)
}
