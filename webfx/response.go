package webfx

import "dqx0.com/go/webfx/webfx/internal/http1"

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
)

type headerField struct {
	name  string
	value string
}

// Response is the mutable descriptor a handler configures before
// returning the body. Defaults: status 200, text/plain with UTF-8
// charset, no custom headers. All setters return the receiver so calls
// chain. One Response serves one request and is discarded after the
// bytes hit the wire.
type Response struct {
	status      int
	contentType string
	fields      []headerField
}

func NewResponse() *Response {
	return &Response{
		status:      200,
		contentType: contentTypeText,
	}
}

// Status sets the HTTP status code.
func (r *Response) Status(code int) *Response {
	r.status = code
	return r
}

// Type sets the Content-Type verbatim.
func (r *Response) Type(contentType string) *Response {
	r.contentType = contentType
	return r
}

// Header sets a custom header. Setting an existing name updates it in
// place, keeping the write order stable.
func (r *Response) Header(name, value string) *Response {
	for i := range r.fields {
		if r.fields[i].name == name {
			r.fields[i].value = value
			return r
		}
	}
	r.fields = append(r.fields, headerField{name: name, value: value})
	return r
}

// JSON sets the content type to application/json.
func (r *Response) JSON() *Response { return r.Type(contentTypeJSON) }

// HTML sets the content type to text/html.
func (r *Response) HTML() *Response { return r.Type(contentTypeHTML) }

// Text sets the content type back to text/plain.
func (r *Response) Text() *Response { return r.Type(contentTypeText) }

// StatusCode returns the current status code.
func (r *Response) StatusCode() int { return r.status }

// ContentType returns the current content type.
func (r *Response) ContentType() string { return r.contentType }

// StatusMessage returns the reason phrase for the current status code,
// "Unknown" for codes outside the fixed table.
func (r *Response) StatusMessage() string { return http1.StatusMessage(r.status) }

// HeaderValue reports a previously set custom header.
func (r *Response) HeaderValue(name string) (string, bool) {
	for _, f := range r.fields {
		if f.name == name {
			return f.value, true
		}
	}
	return "", false
}

// wireFields converts the custom headers for serialization.
func (r *Response) wireFields() []http1.HeaderField {
	if len(r.fields) == 0 {
		return nil
	}
	out := make([]http1.HeaderField, len(r.fields))
	for i, f := range r.fields {
		out[i] = http1.HeaderField{Name: f.name, Value: f.value}
	}
	return out
}
