package webfx

import (
	"net/url"
	"strings"
)

// Request is an immutable view of one parsed HTTP request. Header names
// are lowercase and single-valued; when the client repeats a name the
// last occurrence wins. Query parameters follow the same last-wins
// rule. The lifetime of a Request is one connection.
type Request struct {
	Method string
	// Path is the request path with the query string stripped; "/" is
	// rewritten to "/index.html" before construction.
	Path string
	// RawQuery is the undecoded query string, empty when the URI had
	// no "?".
	RawQuery string

	headers map[string]string
	query   map[string]string
}

func newRequest(method, path, rawQuery string, headers map[string]string) *Request {
	if headers == nil {
		headers = map[string]string{}
	}
	return &Request{
		Method:   method,
		Path:     path,
		RawQuery: rawQuery,
		headers:  headers,
		query:    parseQueryString(rawQuery),
	}
}

// Header returns a header value by case-insensitive name. The second
// result distinguishes a missing header from an empty value.
func (r *Request) Header(name string) (string, bool) {
	v, ok := r.headers[strings.ToLower(name)]
	return v, ok
}

// Values returns the decoded query parameter, or the empty string when
// the parameter is absent. It never signals missing; use the empty
// string check when the distinction matters.
func (r *Request) Values(name string) string {
	return r.query[name]
}

// QueryParams returns a copy of all decoded query parameters.
func (r *Request) QueryParams() map[string]string {
	out := make(map[string]string, len(r.query))
	for k, v := range r.query {
		out[k] = v
	}
	return out
}

// parseQueryString splits on "&", then each segment on the first "=".
// Segments without "=" are dropped entirely. Key and value are
// percent-decoded independently; if either fails to decode the raw
// pair is kept instead of failing the request.
func parseQueryString(qs string) map[string]string {
	params := make(map[string]string)
	if strings.TrimSpace(qs) == "" {
		return params
	}
	for _, pair := range strings.Split(qs, "&") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		dk, errK := url.QueryUnescape(k)
		dv, errV := url.QueryUnescape(v)
		if errK != nil || errV != nil {
			params[k] = v
			continue
		}
		params[dk] = dv
	}
	return params
}
