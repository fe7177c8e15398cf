package webfx

import (
	"errors"
	"io/fs"
	gopath "path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// DefaultStaticDir is the resource directory searched when no route
// matches and no other directory has been configured.
const DefaultStaticDir = "/webroot"

// StaticFileResult is the outcome of a static lookup. Data and
// ContentType are only meaningful when Found is true.
type StaticFileResult struct {
	Found       bool
	Data        []byte
	ContentType string
}

// FileResolver maps a request path to file bytes plus a content type.
// The connection handler treats "not found" and "read error" the same
// way, so implementations fold I/O failures into Found=false.
type FileResolver interface {
	Resolve(requestPath string) StaticFileResult
}

// contentTypes maps known file extensions to their MIME type. Unknown
// extensions fall back to content sniffing.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".ico":  "image/x-icon",
}

// fsResolver serves files from a directory inside an fs.FS, so the
// backing store can be a real directory (os.DirFS) or embedded assets
// (embed.FS) without the core knowing the difference.
type fsResolver struct {
	fsys fs.FS
	dir  string // rooted, e.g. "/webroot"
	log  zerolog.Logger
}

// NewFSResolver returns a FileResolver rooted at dir within fsys. A
// dir without a leading slash gets one prepended.
func NewFSResolver(fsys fs.FS, dir string, log zerolog.Logger) FileResolver {
	return &fsResolver{fsys: fsys, dir: normalizeStaticDir(dir), log: log}
}

func normalizeStaticDir(dir string) string {
	if dir == "" {
		return DefaultStaticDir
	}
	if !strings.HasPrefix(dir, "/") {
		dir = "/" + dir
	}
	return dir
}

func (r *fsResolver) Resolve(requestPath string) StaticFileResult {
	joined := gopath.Join(r.dir, requestPath)
	// Join cleans "..", so anything escaping the root no longer carries
	// the directory prefix.
	if joined != r.dir && !strings.HasPrefix(joined, r.dir+"/") {
		return StaticFileResult{}
	}
	name := strings.TrimPrefix(joined, "/")
	data, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		// Read errors and missing files both come back as not found;
		// only the former is worth a log line.
		if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, fs.ErrInvalid) {
			r.log.Warn().Err(err).Str("path", requestPath).Msg("static file read failed")
		}
		return StaticFileResult{}
	}
	return StaticFileResult{Found: true, Data: data, ContentType: contentTypeFor(requestPath, data)}
}

func contentTypeFor(requestPath string, data []byte) string {
	ext := strings.ToLower(gopath.Ext(requestPath))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return mimetype.Detect(data).String()
}
