// Package webfx is a small HTTP/1.1 server framework built directly on
// TCP, aimed at learning, control, and embeddability in tools.
//
// Highlights
//   - Server: dedicated accept goroutine feeding a fixed worker pool,
//     blocking I/O per connection, one request per connection (no
//     keep-alive, no chunked encoding, no TLS, request bodies ignored).
//   - Routing: exact method+path matching, first match wins, handlers
//     are plain functions returning the body string.
//   - Static files: fs.FS-backed fallback with content-type inference,
//     searched when no route matches.
//   - Observability: zerolog structured logging plus a plug-in Meter
//     interface.
//
// Quick start:
//
//	s := webfx.New(webfx.WithLogger(log))
//	s.Get("/hello", func(req *webfx.Request, res *webfx.Response) string {
//	    name := req.Values("name")
//	    if name == "" {
//	        name = "World"
//	    }
//	    return "Hello " + name + "!"
//	})
//	s.StaticFiles("/webroot")
//	if err := s.Start(8080); err != nil { log.Fatal().Err(err).Send() }
//	defer s.Stop()
package webfx
