package http1

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestWriteResponse_Wire(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	fields := []HeaderField{
		{Name: "Location", Value: "/r/1"},
		{Name: "X-App", Value: "demo"},
	}
	if err := WriteResponse(bw, 201, "application/json; charset=utf-8", fields, []byte(`{"id":1}`)); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	want := "HTTP/1.1 201 Created\r\n" +
		"Content-Type: application/json; charset=utf-8\r\n" +
		"Content-Length: 8\r\n" +
		"Location: /r/1\r\n" +
		"X-App: demo\r\n" +
		"\r\n" +
		`{"id":1}`
	if got := buf.String(); got != want {
		t.Fatalf("wire output:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteResponse_EmptyBody(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, 200, "text/plain; charset=utf-8", nil, nil); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	got := buf.String()
	if !strings.Contains(got, "Content-Length: 0\r\n") {
		t.Fatalf("missing zero Content-Length: %q", got)
	}
	if strings.Contains(got, "Connection:") {
		t.Fatalf("Connection header must not be emitted: %q", got)
	}
	if !strings.HasSuffix(got, "\r\n\r\n") {
		t.Fatalf("missing blank line terminator: %q", got)
	}
}

func TestWriteResponse_ContentLengthIsByteLength(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	body := []byte("héllo") // 6 bytes, 5 runes
	if err := WriteResponse(bw, 200, "text/plain; charset=utf-8", nil, body); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if !strings.Contains(buf.String(), "Content-Length: 6\r\n") {
		t.Fatalf("Content-Length must count bytes: %q", buf.String())
	}
}

func TestWriteResponse_SanitizesHeaderValues(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	fields := []HeaderField{{Name: "X-Evil", Value: "a\r\nInjected: yes"}}
	if err := WriteResponse(bw, 200, "text/plain; charset=utf-8", fields, nil); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if strings.Contains(buf.String(), "Injected: yes\r\n") {
		t.Fatalf("header value injection: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "X-Evil: aInjected: yes\r\n") {
		t.Fatalf("control bytes should be stripped: %q", buf.String())
	}
}

func TestStatusMessage(t *testing.T) {
	cases := map[int]string{
		200: "OK",
		201: "Created",
		400: "Bad Request",
		404: "Not Found",
		500: "Internal Server Error",
		204: "Unknown",
		301: "Unknown",
		418: "Unknown",
		503: "Unknown",
	}
	for code, want := range cases {
		if got := StatusMessage(code); got != want {
			t.Fatalf("StatusMessage(%d)=%q, want %q", code, got, want)
		}
	}
}
