package webfx

import (
	"sync"
	"testing"
)

func nopHandler(body string) Handler {
	return func(*Request, *Response) string { return body }
}

func TestRouterExactMatch(t *testing.T) {
	ro := NewRouter()
	ro.AddRoute("GET", "/hello", nopHandler("hello"))
	ro.AddRoute("POST", "/hello", nopHandler("posted"))

	r, ok := ro.FindRoute("GET", "/hello")
	if !ok {
		t.Fatal("GET /hello not found")
	}
	if got := r.Handler(nil, nil); got != "hello" {
		t.Fatalf("wrong handler, body=%q", got)
	}

	if _, ok := ro.FindRoute("GET", "/hello/"); ok {
		t.Fatal("trailing slash must not match")
	}
	if _, ok := ro.FindRoute("get", "/hello"); ok {
		t.Fatal("method match must be case-sensitive")
	}
	if _, ok := ro.FindRoute("GET", "/Hello"); ok {
		t.Fatal("path match must be case-sensitive")
	}
	if _, ok := ro.FindRoute("DELETE", "/hello"); ok {
		t.Fatal("unregistered method must not match")
	}
}

func TestRouterFirstMatchWins(t *testing.T) {
	ro := NewRouter()
	ro.AddRoute("GET", "/dup", nopHandler("first"))
	ro.AddRoute("GET", "/dup", nopHandler("second"))
	r, ok := ro.FindRoute("GET", "/dup")
	if !ok {
		t.Fatal("route not found")
	}
	if got := r.Handler(nil, nil); got != "first" {
		t.Fatalf("tie-break by insertion order broken, body=%q", got)
	}
}

func TestRouterClear(t *testing.T) {
	ro := NewRouter()
	ro.AddRoute("GET", "/a", nopHandler(""))
	ro.AddRoute("GET", "/b", nopHandler(""))
	if ro.Len() != 2 {
		t.Fatalf("Len=%d", ro.Len())
	}
	ro.ClearRoutes()
	if ro.Len() != 0 {
		t.Fatalf("Len after clear=%d", ro.Len())
	}
	if _, ok := ro.FindRoute("GET", "/a"); ok {
		t.Fatal("route survived ClearRoutes")
	}
}

func TestRouterConcurrentAccess(t *testing.T) {
	ro := NewRouter()
	ro.AddRoute("GET", "/seed", nopHandler(""))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ro.AddRoute("GET", "/more", nopHandler(""))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, ok := ro.FindRoute("GET", "/seed"); !ok {
					t.Error("seed route lost during concurrent registration")
					return
				}
			}
		}()
	}
	wg.Wait()
}
