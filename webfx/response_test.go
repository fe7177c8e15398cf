package webfx

import "testing"

func TestResponseDefaults(t *testing.T) {
	r := NewResponse()
	if r.StatusCode() != 200 {
		t.Fatalf("status=%d", r.StatusCode())
	}
	if r.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("content type=%q", r.ContentType())
	}
	if len(r.wireFields()) != 0 {
		t.Fatalf("default response must have no custom headers")
	}
	if r.StatusMessage() != "OK" {
		t.Fatalf("status message=%q", r.StatusMessage())
	}
}

func TestResponseChaining(t *testing.T) {
	r := NewResponse().Status(201).JSON().Header("Location", "/r/1")
	if r.StatusCode() != 201 {
		t.Fatalf("status=%d", r.StatusCode())
	}
	if r.ContentType() != "application/json; charset=utf-8" {
		t.Fatalf("content type=%q", r.ContentType())
	}
	if v, ok := r.HeaderValue("Location"); !ok || v != "/r/1" {
		t.Fatalf("Location=%q,%v", v, ok)
	}
	if r.StatusMessage() != "Created" {
		t.Fatalf("status message=%q", r.StatusMessage())
	}
}

func TestResponseTypeShorthands(t *testing.T) {
	if got := NewResponse().HTML().ContentType(); got != "text/html; charset=utf-8" {
		t.Fatalf("HTML()=%q", got)
	}
	if got := NewResponse().JSON().Text().ContentType(); got != "text/plain; charset=utf-8" {
		t.Fatalf("Text() after JSON()=%q", got)
	}
}

func TestResponseHeaderOrderStable(t *testing.T) {
	r := NewResponse().
		Header("X-First", "1").
		Header("X-Second", "2").
		Header("X-First", "updated")
	fields := r.wireFields()
	if len(fields) != 2 {
		t.Fatalf("field count=%d", len(fields))
	}
	if fields[0].Name != "X-First" || fields[0].Value != "updated" {
		t.Fatalf("fields[0]=%+v, update must keep position", fields[0])
	}
	if fields[1].Name != "X-Second" {
		t.Fatalf("fields[1]=%+v", fields[1])
	}
}

func TestResponseUnknownStatus(t *testing.T) {
	if got := NewResponse().Status(999).StatusMessage(); got != "Unknown" {
		t.Fatalf("status message=%q", got)
	}
}
