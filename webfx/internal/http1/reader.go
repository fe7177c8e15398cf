package http1

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// ParsedRequest is a minimal representation parsed from the wire.
// Header names are stored lowercase; a duplicate name keeps the last
// occurrence. The request body, if any, is never read.
type ParsedRequest struct {
	Method     string
	RequestURI string
	Proto      string
	Header     map[string]string
}

var (
	// ErrMalformedRequestLine reports a request line that does not
	// split into exactly three whitespace-separated tokens.
	ErrMalformedRequestLine = errors.New("http1: malformed request line")
	// ErrLineTooLong reports a request or header line exceeding MaxLineBytes.
	ErrLineTooLong = errors.New("http1: line too long")
)

type Reader struct {
	BR           *bufio.Reader
	MaxLineBytes int
}

// ReadRequest parses one request line plus headers off the stream.
// An empty stream yields io.EOF. EOF in the middle of the header block
// terminates the headers without error; a request line arriving without
// a trailing newline is still accepted.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	line, err := r.readLine()
	if line == "" {
		if err == nil || err == io.EOF {
			return nil, io.EOF
		}
		return nil, err
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return nil, ErrMalformedRequestLine
	}
	hdr, err := r.readHeaders()
	if err != nil {
		return nil, err
	}
	return &ParsedRequest{
		Method:     parts[0],
		RequestURI: parts[1],
		Proto:      parts[2],
		Header:     hdr,
	}, nil
}

// readHeaders consumes lines until a blank line or EOF. A line without
// a ": " separator is skipped silently; names are lowercased and a
// repeated name keeps the last value.
func (r *Reader) readHeaders() (map[string]string, error) {
	h := make(map[string]string)
	for {
		line, err := r.readLine()
		if line == "" {
			if err != nil && err != io.EOF {
				return nil, err
			}
			break
		}
		if i := strings.Index(line, ": "); i >= 0 {
			h[strings.ToLower(line[:i])] = line[i+2:]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return h, nil
}

// readLine reads up to a LF, dropping CR bytes. On EOF it returns
// whatever was accumulated together with io.EOF.
func (r *Reader) readLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			if err == io.EOF {
				return sb.String(), io.EOF
			}
			return sb.String(), err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		if b != '\r' {
			sb.WriteByte(b)
		}
		if r.MaxLineBytes > 0 && sb.Len() > r.MaxLineBytes {
			return "", ErrLineTooLong
		}
	}
}
