package webfx

import "sync"

// Handler computes a response body from a parsed request and a mutable
// response descriptor. The returned string becomes the body verbatim.
type Handler func(*Request, *Response) string

// Route binds an HTTP method and an exact path to a handler. Both
// fields compare case-sensitively; there is no pattern syntax.
type Route struct {
	Method  string
	Path    string
	Handler Handler
}

// Matches reports whether the route serves the given method and path.
func (r Route) Matches(method, path string) bool {
	return r.Method == method && r.Path == path
}

// Router holds the ordered route list. Registration happens typically
// at startup but is not guaranteed to, so reads and appends are guarded
// by an RWMutex; lookups from concurrent connection handlers only take
// the read side.
type Router struct {
	mu     sync.RWMutex
	routes []Route
}

func NewRouter() *Router {
	return &Router{}
}

// AddRoute appends unconditionally. Duplicate method+path pairs are
// allowed; FindRoute resolves ties by insertion order.
func (ro *Router) AddRoute(method, path string, h Handler) {
	ro.mu.Lock()
	ro.routes = append(ro.routes, Route{Method: method, Path: path, Handler: h})
	ro.mu.Unlock()
}

// FindRoute scans in insertion order and returns the first route whose
// method and path both match exactly.
func (ro *Router) FindRoute(method, path string) (Route, bool) {
	ro.mu.RLock()
	defer ro.mu.RUnlock()
	for _, r := range ro.routes {
		if r.Matches(method, path) {
			return r, true
		}
	}
	return Route{}, false
}

// ClearRoutes empties the table.
func (ro *Router) ClearRoutes() {
	ro.mu.Lock()
	ro.routes = nil
	ro.mu.Unlock()
}

// Len returns the number of registered routes.
func (ro *Router) Len() int {
	ro.mu.RLock()
	defer ro.mu.RUnlock()
	return len(ro.routes)
}
