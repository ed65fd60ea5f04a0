// Package server serves an archive of chat logs over HTTP, rendering pages
// that have not been built yet on the fly.
//
// The server is read-only: it never writes into the archive. Rendered pages
// are kept in an in-memory cache keyed by the source file's path, size and
// modification time.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coocood/freecache"
	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/sync/singleflight"

	"github.com/sonnes/irclog/archive"
	"github.com/sonnes/irclog/convert"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/render"
	"github.com/sonnes/irclog/render/html"
)

// Defaults for Config.
const (
	DefaultCacheSize      = 32 << 20
	DefaultMaxSourceBytes = 32 << 20
	DefaultRenderTimeout  = 30 * time.Second
)

// MetricsPath serves Prometheus metrics when enabled.
const MetricsPath = "/-/metrics"

var errTooLarge = errors.New("source exceeds size limit")

// Config is resolved once at startup.
type Config struct {
	// Dir holds the logs of the default channel.
	Dir string
	// ChannelDir enables multi-channel mode: each subdirectory holds the
	// logs of one channel, addressed as /<channel>/<file>.
	ChannelDir string
	// Pattern selects log files for dynamic indexes. Defaults to
	// archive.DefaultPattern.
	Pattern   string
	SearchBox bool
	// Stylesheet is served as /irclog.css. Defaults to html.Stylesheet.
	Stylesheet []byte
	Converter  *convert.Converter
	Reader     reader.Config
	// CacheSize is the render cache size in bytes. Defaults to
	// DefaultCacheSize.
	CacheSize int
	// MaxSourceBytes rejects larger sources with 413. Defaults to
	// DefaultMaxSourceBytes.
	MaxSourceBytes int64
	// RenderTimeout bounds every request. Defaults to DefaultRenderTimeout.
	RenderTimeout time.Duration
	// Metrics exposes Prometheus metrics at MetricsPath.
	Metrics bool
	Logger  *log.Logger
}

// Server serves one archive, or a directory of per-channel archives.
type Server struct {
	cfg     Config
	logger  *log.Logger
	reader  *reader.Reader
	cache   *freecache.Cache
	group   singleflight.Group
	metrics *metrics
}

// New creates a Server, filling in defaults.
func New(cfg Config) *Server {
	if cfg.Pattern == "" {
		cfg.Pattern = archive.DefaultPattern
	}
	if cfg.Stylesheet == nil {
		cfg.Stylesheet = html.Stylesheet
	}
	if cfg.Converter == nil {
		cfg.Converter = convert.New(convert.Config{})
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.MaxSourceBytes <= 0 {
		cfg.MaxSourceBytes = DefaultMaxSourceBytes
	}
	if cfg.RenderTimeout <= 0 {
		cfg.RenderTimeout = DefaultRenderTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		reader: reader.New(cfg.Reader),
		cache:  freecache.NewCache(cfg.CacheSize),
	}
	if cfg.Metrics {
		s.metrics = newMetrics()
	}
	return s
}

// Handler returns the HTTP handler: compressed responses, a request id and
// access log on every request, and a deadline on each response.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	if s.metrics != nil {
		mux.Handle("GET "+MetricsPath, s.metrics.handler())
	}
	mux.HandleFunc("GET /", s.serve)

	h := http.TimeoutHandler(mux, s.cfg.RenderTimeout, "Request timed out")
	return s.withRequestLog(gzhttp.GzipHandler(h))
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w}
	route := "notfound"
	defer func() { s.metrics.request(route, rec.status) }()

	multi := s.cfg.ChannelDir != ""
	channel, name, ok := ParsePath(r.URL.Path, multi)
	if !ok {
		notFound(rec)
		return
	}

	dir := s.cfg.Dir
	if channel != "" {
		dir = filepath.Join(s.cfg.ChannelDir, channel)
	}

	switch {
	case name == archive.IndexName && multi && channel == "":
		route = "channels"
		s.channels(rec)
	case name == archive.StylesheetName:
		route = "stylesheet"
		rec.Header().Set("Content-Type", "text/css")
		rec.Write(s.cfg.Stylesheet)
	case dir == "":
		notFound(rec)
	default:
		route = s.file(rec, r, dir, channel, name)
	}
}

// file serves name from dir, falling back to a dynamic index or page. It
// returns the route label for metrics.
func (s *Server) file(w http.ResponseWriter, r *http.Request, dir, channel, name string) string {
	path := filepath.Join(dir, name)
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
			s.static(w, r, f, fi)
			return "static"
		}
	}

	switch {
	case name == archive.IndexName:
		s.index(w, dir, channel)
		return "index"
	case strings.HasSuffix(name, ".html"):
		s.page(w, dir, channel, name)
		return "render"
	}
	notFound(w)
	return "notfound"
}

func (s *Server) static(w http.ResponseWriter, r *http.Request, f *os.File, fi os.FileInfo) {
	name := fi.Name()
	switch {
	case strings.HasSuffix(name, ".css"):
		w.Header().Set("Content-Type", "text/css")
	case strings.HasSuffix(name, ".log") || strings.HasSuffix(name, ".txt"):
		s.plainText(w, f, fi)
		return
	default:
		w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	}
	http.ServeContent(w, r, name, fi.ModTime(), f)
}

// plainText re-encodes a raw log as UTF-8, keeping every line as written.
func (s *Server) plainText(w http.ResponseWriter, f *os.File, fi os.FileInfo) {
	if fi.Size() > s.cfg.MaxSourceBytes {
		tooLarge(w)
		return
	}
	var buf bytes.Buffer
	if err := reader.Transcode(&buf, f); err != nil {
		s.fail(w, "read log", f.Name(), err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=UTF-8")
	w.Write(buf.Bytes())
}

func (s *Server) channels(w http.ResponseWriter) {
	entries, err := os.ReadDir(s.cfg.ChannelDir)
	if err != nil {
		s.fail(w, "list channels", s.cfg.ChannelDir, err)
		return
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	var buf bytes.Buffer
	if err := html.RenderChannels(&buf, archive.DefaultTitle, names); err != nil {
		s.fail(w, "render channels", s.cfg.ChannelDir, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

func (s *Server) index(w http.ResponseWriter, dir, channel string) {
	files, err := archive.Discover(dir, s.cfg.Pattern, s.logger)
	if err != nil {
		s.fail(w, "list logs", dir, err)
		return
	}
	title := archive.DefaultTitle
	if channel != "" {
		title += " of " + channel
	}
	var buf bytes.Buffer
	if err := html.RenderIndex(&buf, html.IndexPage{
		Title:     title,
		SearchBox: s.cfg.SearchBox,
		Files:     files,
	}); err != nil {
		s.fail(w, "render index", dir, err)
		return
	}
	writeHTML(w, buf.Bytes())
}

// page renders the log behind name ("X.html" is rendered from X or X.gz).
func (s *Server) page(w http.ResponseWriter, dir, channel, name string) {
	src, _ := core.SourceName(name)
	path, fi, ok := findSource(filepath.Join(dir, src))
	if !ok {
		notFound(w)
		return
	}
	lf, err := core.NewLogFile(path)
	if err != nil {
		notFound(w)
		return
	}
	if fi.Size() > s.cfg.MaxSourceBytes {
		tooLarge(w)
		return
	}

	key := fmt.Sprintf("%s|%d|%d", path, fi.ModTime().UnixNano(), fi.Size())
	if body, err := s.cache.Get([]byte(key)); err == nil {
		s.metrics.cache(true)
		writeHTML(w, body)
		return
	}
	s.metrics.cache(false)

	v, err, _ := s.group.Do(key, func() (any, error) {
		body, err := s.render(lf, channel)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set([]byte(key), body, 0); err != nil {
			s.logger.Debug("page not cached", "path", path, "err", err)
		}
		return body, nil
	})
	if err != nil {
		var fe *core.FileError
		if errors.As(err, &fe) {
			s.logger.Warn("cannot read log", "path", path, "err", err)
			notFound(w)
			return
		}
		s.fail(w, "render log", path, err)
		return
	}
	writeHTML(w, v.([]byte))
}

func (s *Server) render(lf *core.LogFile, channel string) ([]byte, error) {
	start := time.Now()
	events, err := s.reader.ReadFile(lf.Path)
	if err != nil {
		return nil, err
	}

	title := "IRC log"
	if channel != "" {
		title += " of " + channel
	}
	page := render.Page{
		Title:     title + " for " + lf.PageTitle(),
		Index:     render.Link{URL: archive.IndexName, Title: "Index"},
		SearchBox: s.cfg.SearchBox,
	}

	var buf bytes.Buffer
	if err := s.cfg.Converter.Convert(events, html.NewXHTMLTable(&buf), page); err != nil {
		return nil, err
	}
	s.metrics.rendered(time.Since(start))
	return buf.Bytes(), nil
}

// findSource looks for path, then path+".gz".
func findSource(path string) (string, os.FileInfo, bool) {
	for _, p := range []string{path, path + ".gz"} {
		if fi, err := os.Stat(p); err == nil && fi.Mode().IsRegular() {
			return p, fi, true
		}
	}
	return "", nil, false
}

func (s *Server) fail(w http.ResponseWriter, op, path string, err error) {
	s.logger.Error(op, "path", path, "err", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.Write(body)
}

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Not found"))
}

func tooLarge(w http.ResponseWriter) {
	http.Error(w, errTooLarge.Error(), http.StatusRequestEntityTooLarge)
}
