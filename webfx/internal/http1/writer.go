package http1

import (
	"bufio"
	"fmt"
	"strings"
)

// HeaderField is a single response header. Fields are written in the
// order supplied by the caller.
type HeaderField struct {
	Name  string
	Value string
}

// WriteResponse serializes a complete response: status line,
// Content-Type, Content-Length computed from the body, the extra
// fields in order, a blank line, then the body. The writer is flushed
// before returning. No Connection header is emitted; the caller closes
// the connection after every response.
func WriteResponse(bw *bufio.Writer, status int, contentType string, fields []HeaderField, body []byte) error {
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, StatusMessage(status)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "Content-Type: %s\r\n", sanitizeHeaderValue(contentType)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "Content-Length: %d\r\n", len(body)); err != nil {
		return err
	}
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, sanitizeHeaderValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// StatusMessage returns the reason phrase for the given status code.
// Codes outside the table map to "Unknown".
func StatusMessage(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	default:
		return "Unknown"
	}
}

// sanitizeHeaderValue strips CR/LF and other control characters except
// HTAB so a value can never break out of its header line.
func sanitizeHeaderValue(v string) string {
	if !strings.ContainsFunc(v, func(r rune) bool {
		return r == '\r' || r == '\n' || r == 0x7f || (r < 0x20 && r != '\t')
	}) {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
