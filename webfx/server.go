package webfx

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	// DefaultPort is used by StartDefault.
	DefaultPort = 8080

	defaultWorkers    = 10
	defaultQueueDepth = 256
)

// Server is one framework instance: route table, static file fallback
// and the listening socket with its worker pool. Instances are
// independent, so tests can run several side by side; there is no
// package-level registration state.
type Server struct {
	router    *Router
	log       zerolog.Logger
	meter     Meter
	workers   int
	queue     int
	staticFS  fs.FS
	staticDir string
	resolver  FileResolver

	mu       sync.Mutex
	running  bool
	ln       net.Listener
	pool     *workerPool
	stopping atomic.Bool
}

// Option configures a Server at construction time.
type Option func(*Server)

// WithLogger sets the structured logger. The default discards logs.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMeter sets the metrics sink. The default discards measurements.
func WithMeter(m Meter) Option {
	return func(s *Server) { s.meter = m }
}

// WithWorkers sets the worker pool size (default 10).
func WithWorkers(n int) Option {
	return func(s *Server) { s.workers = n }
}

// WithQueueDepth bounds the pending-connection queue (default 256).
// When the queue is full the accept loop blocks rather than dropping
// connections.
func WithQueueDepth(n int) Option {
	return func(s *Server) { s.queue = n }
}

// WithStaticFS sets the filesystem searched for static files. The
// default is the process working directory; an embed.FS works too.
func WithStaticFS(fsys fs.FS) Option {
	return func(s *Server) { s.staticFS = fsys }
}

// WithResolver replaces the static file resolver entirely, overriding
// WithStaticFS and StaticFiles.
func WithResolver(r FileResolver) Option {
	return func(s *Server) { s.resolver = r }
}

// New constructs a stopped Server with no routes registered.
func New(opts ...Option) *Server {
	s := &Server{
		router:    NewRouter(),
		log:       zerolog.Nop(),
		meter:     NopMeter{},
		workers:   defaultWorkers,
		queue:     defaultQueueDepth,
		staticFS:  os.DirFS("."),
		staticDir: DefaultStaticDir,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get registers a GET route.
func (s *Server) Get(path string, h Handler) { s.addRoute("GET", path, h) }

// Post registers a POST route.
func (s *Server) Post(path string, h Handler) { s.addRoute("POST", path, h) }

// Put registers a PUT route.
func (s *Server) Put(path string, h Handler) { s.addRoute("PUT", path, h) }

// Delete registers a DELETE route.
func (s *Server) Delete(path string, h Handler) { s.addRoute("DELETE", path, h) }

func (s *Server) addRoute(method, path string, h Handler) {
	s.router.AddRoute(method, path, h)
	s.log.Info().Str("method", method).Str("path", path).Msg("route registered")
}

// Router exposes the route table, mainly for tests and debugging.
func (s *Server) Router() *Router { return s.router }

// StaticFiles sets the directory searched when no route matches. A
// directory without a leading slash gets one prepended.
func (s *Server) StaticFiles(dir string) {
	s.staticDir = normalizeStaticDir(dir)
	s.log.Info().Str("dir", s.staticDir).Msg("static files directory set")
}

// StartDefault starts the server on DefaultPort.
func (s *Server) StartDefault() error { return s.Start(DefaultPort) }

// Start binds the listening socket on port and launches the accept
// loop in its own goroutine, returning once the socket is bound. Port
// 0 binds an OS-assigned port, reported by Addr. Starting a running
// server logs a warning and is otherwise a no-op.
func (s *Server) Start(port int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.log.Warn().Msg("server is already running")
		return nil
	}
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("webfx: listen on port %d: %w", port, err)
	}
	// The resolver is bound per start so StaticFiles takes effect on a
	// restart and in-flight handlers never observe a swap.
	resolver := s.resolver
	if resolver == nil {
		resolver = NewFSResolver(s.staticFS, s.staticDir, s.log)
	}
	s.ln = ln
	s.pool = newWorkerPool(s.workers, s.queue, func(c net.Conn) { s.serveConn(c, resolver) })
	s.running = true
	s.stopping.Store(false)
	go s.acceptLoop(ln, s.pool)
	s.log.Info().
		Str("addr", ln.Addr().String()).
		Int("workers", s.workers).
		Int("routes", s.router.Len()).
		Str("static_dir", s.staticDir).
		Msg("server started")
	return nil
}

// Stop closes the listening socket and tells the worker pool to stop
// accepting new tasks. In-flight and queued connections run to
// completion; nothing is cancelled. Stopping a stopped server is a
// no-op.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.stopping.Store(true)
	if err := s.ln.Close(); err != nil {
		s.log.Error().Err(err).Msg("error closing listener")
	}
	s.pool.Shutdown()
	s.running = false
	s.ln = nil
	s.pool = nil
	s.log.Info().Msg("server stopped")
}

// Running reports whether the server currently owns a listening socket.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Addr returns the bound listener address, or "" when stopped.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// acceptLoop owns the listener. Accept errors are transient (logged,
// loop continues) unless the listener was closed: after Stop that is
// expected and suppressed, otherwise it still terminates the loop.
func (s *Server) acceptLoop(ln net.Listener, pool *workerPool) {
	for {
		c, err := ln.Accept()
		if err != nil {
			if s.stopping.Load() {
				return
			}
			if errors.Is(err, net.ErrClosed) {
				s.log.Error().Err(err).Msg("listener closed unexpectedly")
				return
			}
			s.log.Error().Err(err).Msg("error accepting connection")
			continue
		}
		if err := pool.Submit(c); err != nil {
			// Pool shut down between accept and submit.
			_ = c.Close()
			return
		}
	}
}
