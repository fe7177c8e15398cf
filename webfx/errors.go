package webfx

import "errors"

var (
	ErrBadRequest     = errors.New("webfx: bad request")
	ErrAlreadyRunning = errors.New("webfx: server already running")
	ErrNotRunning     = errors.New("webfx: server not running")
	ErrPoolClosed     = errors.New("webfx: worker pool closed")
)
