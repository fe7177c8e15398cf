package webfx

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dqx0.com/go/webfx/webfx/internal/http1"
)

const maxLineBytes = 8 << 10

// serveConn serves exactly one request on c and closes it. There is
// no keep-alive: every response implicitly ends the connection, and
// the deferred Close runs no matter which step failed.
func (s *Server) serveConn(c net.Conn, resolver FileResolver) {
	defer c.Close()

	start := time.Now()
	log := s.log.With().
		Str("req_id", uuid.NewString()).
		Str("remote", c.RemoteAddr().String()).
		Logger()

	br := bufio.NewReader(c)
	bw := bufio.NewWriter(c)

	rr := &http1.Reader{BR: br, MaxLineBytes: maxLineBytes}
	pr, err := rr.ReadRequest()
	if err != nil {
		if isParseError(err) {
			log.Warn().Err(err).Msg("malformed request")
			s.finish(log, start, "", "", 400, writeErrorResponse(bw, 400))
		} else {
			log.Error().Err(err).Msg("error reading request")
		}
		return
	}

	path, rawQuery := splitRequestURI(pr.RequestURI)
	if path == "/" {
		path = "/index.html"
	}
	req := newRequest(pr.Method, path, rawQuery, pr.Header)
	res := NewResponse()

	if route, ok := s.router.FindRoute(req.Method, req.Path); ok {
		body, herr := invokeHandler(route.Handler, req, res)
		if herr != nil {
			// The original cause stays server-side; the client only
			// ever sees a generic 500.
			log.Error().Err(herr).Str("path", req.Path).Msg("error executing route handler")
			s.finish(log, start, req.Method, req.Path, 500, writeErrorResponse(bw, 500))
			return
		}
		werr := http1.WriteResponse(bw, res.StatusCode(), res.ContentType(), res.wireFields(), []byte(body))
		s.finish(log, start, req.Method, req.Path, res.StatusCode(), werr)
		return
	}

	if fr := resolver.Resolve(req.Path); fr.Found {
		werr := http1.WriteResponse(bw, 200, fr.ContentType, nil, fr.Data)
		s.finish(log, start, req.Method, req.Path, 200, werr)
		return
	}
	s.finish(log, start, req.Method, req.Path, 404, writeErrorResponse(bw, 404))
}

// finish emits the per-request log line and measurements, noting a
// write-side failure; the response may not have reached the client in
// that case.
func (s *Server) finish(log zerolog.Logger, start time.Time, method, path string, status int, writeErr error) {
	elapsed := time.Since(start)
	s.meter.Counter("webfx_requests_total", 1, Label{Key: "status", Value: strconv.Itoa(status)})
	s.meter.Histogram("webfx_request_duration_seconds", elapsed.Seconds())
	ev := log.Info()
	if writeErr != nil {
		ev = log.Error().Err(writeErr)
	}
	ev.Str("method", method).
		Str("path", path).
		Int("status", status).
		Dur("elapsed", elapsed).
		Msg("request handled")
}

// invokeHandler runs h, converting a panic into an error so one bad
// handler cannot take the worker down.
func invokeHandler(h Handler, req *Request, res *Response) (body string, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("handler panic: %v", v)
		}
	}()
	return h(req, res), nil
}

// splitRequestURI separates the path from the raw query string on the
// first "?". The query is empty when the URI has none.
func splitRequestURI(uri string) (path, rawQuery string) {
	path, rawQuery, _ = strings.Cut(uri, "?")
	return path, rawQuery
}

// writeErrorResponse sends the fixed HTML error page for code.
func writeErrorResponse(bw *bufio.Writer, code int) error {
	msg := http1.StatusMessage(code)
	body := fmt.Sprintf("<html><body><h1>%d %s</h1></body></html>", code, msg)
	return http1.WriteResponse(bw, code, contentTypeHTML, nil, []byte(body))
}

// isParseError separates malformed input (still answered with a 400)
// from transport failures (connection dropped, nothing to answer).
func isParseError(err error) bool {
	return errors.Is(err, http1.ErrMalformedRequestLine) ||
		errors.Is(err, http1.ErrLineTooLong) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}
