// Package archive maintains a directory of daily chat logs as a navigable
// HTML archive. Each build renders only the days whose pages are out of date,
// links every day to its neighbours and rewrites the index.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/sonnes/irclog/convert"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/manifest"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/render"
	"github.com/sonnes/irclog/render/html"
)

// Names of the files a build maintains besides the daily pages.
const (
	IndexName      = "index.html"
	LatestName     = "latest.log.html"
	StylesheetName = "irclog.css"
	ReadmeName     = "README.md"
)

// Defaults for Options.
const (
	DefaultPattern = "*.log"
	DefaultTitle   = "IRC logs"
)

// RendererFunc creates the renderer for one page.
type RendererFunc func(w io.Writer) render.Renderer

// Options configure a build.
type Options struct {
	// Pattern selects transcripts; files matching Pattern+".gz" are included
	// too. Defaults to DefaultPattern.
	Pattern string
	// Force regenerates every page.
	Force bool
	// Title heads the index page. Defaults to DefaultTitle.
	Title string
	// Prefix is prepended to each day's title, e.g. "IRC log of #zope for ".
	Prefix    string
	SearchBox bool
	// Style renders the daily pages. Defaults to the xhtmltable style.
	Style     RendererFunc
	Converter *convert.Converter
	Reader    reader.Config
	// Stylesheet is copied to irclog.css when the archive has none.
	// Defaults to html.Stylesheet.
	Stylesheet []byte
	Logger     *log.Logger
}

func (o *Options) setDefaults() {
	if o.Pattern == "" {
		o.Pattern = DefaultPattern
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Style == nil {
		o.Style = func(w io.Writer) render.Renderer { return html.NewXHTMLTable(w) }
	}
	if o.Converter == nil {
		o.Converter = convert.New(convert.Config{})
	}
	if o.Stylesheet == nil {
		o.Stylesheet = html.Stylesheet
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Result summarises a build.
type Result struct {
	Generated []string // artifact names written, newest first
	Skipped   []string // artifact names already up to date
	Latest    string   // target of latest.log.html, empty when not linked
}

// Build brings the archive in dir up to date.
//
// A transcript without a date in its name aborts the build before anything
// is written. Failures to render individual days are logged and the rest of
// the archive is still built; they are returned together once the index has
// been written.
func Build(ctx context.Context, dir string, opts Options) (*Result, error) {
	opts.setDefaults()
	logger := opts.Logger.With("dir", dir)

	unlock, err := lock(dir)
	if err != nil {
		return nil, err
	}
	defer unlock()

	files, err := Discover(dir, opts.Pattern, logger)
	if err != nil {
		return nil, err
	}
	plan := NewPlan(dir, files)
	logger.Debug("planned archive", "files", len(plan.Entries))

	b := &builder{
		opts:   opts,
		logger: logger,
		reader: reader.New(opts.Reader),
		stats:  make(map[string]*core.Stats),
	}
	res := &Result{}
	var errs []error

	for _, e := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		stale, err := e.Stale(opts.Force)
		if err != nil {
			logger.Error("cannot check page", "file", e.Link, "err", err)
			errs = append(errs, err)
			continue
		}
		if !stale {
			res.Skipped = append(res.Skipped, e.Link)
			continue
		}
		if err := b.page(e); err != nil {
			logger.Error("cannot render page", "file", e.Link, "err", err)
			errs = append(errs, err)
			continue
		}
		logger.Info("generated", "file", e.Link)
		res.Generated = append(res.Generated, e.Link)
	}

	if len(plan.Entries) > 0 {
		if err := b.finalize(plan, res); err != nil {
			errs = append(errs, err)
		}
	}
	return res, errors.Join(errs...)
}

type builder struct {
	opts   Options
	logger *log.Logger
	reader *reader.Reader
	stats  map[string]*core.Stats // by link, for pages rendered in this run
}

// PageFor returns the page header of a day: its title and navigation links.
func PageFor(e *Entry, prefix string, searchbox bool) render.Page {
	p := render.Page{
		Title:     prefix + e.PageTitle(),
		Index:     render.Link{URL: IndexName, Title: "Index"},
		SearchBox: searchbox,
	}
	if e.Prev != nil {
		p.Prev = render.Link{URL: e.Prev.Link, Title: "« " + e.Prev.PageTitle()}
	}
	if e.Next != nil {
		p.Next = render.Link{URL: e.Next.Link, Title: e.Next.PageTitle() + " »"}
	}
	return p
}

func (b *builder) page(e *Entry) error {
	events, err := b.reader.ReadFile(e.Path)
	if err != nil {
		return err
	}
	b.stats[e.Link] = core.ComputeStats(events)
	page := PageFor(e, b.opts.Prefix, b.opts.SearchBox)
	return writeAtomic(e.Artifact, func(w io.Writer) error {
		return b.opts.Converter.Convert(events, b.opts.Style(w), page)
	})
}

// finalize points latest.log.html at the newest page and rewrites the index,
// the manifest and (when missing) the stylesheet.
func (b *builder) finalize(plan *Plan, res *Result) error {
	var errs []error

	newest := plan.Newest()
	latest := filepath.Join(plan.Dir, LatestName)
	if err := os.Remove(latest); err != nil && !os.IsNotExist(err) {
		b.logger.Warn("cannot remove latest link", "err", err)
	}
	if err := os.Symlink(newest.Link, latest); err != nil {
		b.logger.Warn("cannot link latest page", "target", newest.Link, "err", err)
	} else {
		res.Latest = newest.Link
	}

	if err := b.index(plan, res.Latest); err != nil {
		b.logger.Error("cannot write index", "err", err)
		errs = append(errs, err)
	}
	if err := b.manifest(plan, res.Latest); err != nil {
		b.logger.Error("cannot write manifest", "err", err)
		errs = append(errs, err)
	}
	if err := b.stylesheet(plan.Dir); err != nil {
		b.logger.Error("cannot write stylesheet", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (b *builder) index(plan *Plan, latest string) error {
	files := make([]*core.LogFile, 0, len(plan.Entries))
	for _, e := range slices.Backward(plan.Entries) {
		files = append(files, e.LogFile)
	}
	page := html.IndexPage{
		Title:     b.opts.Title,
		SearchBox: b.opts.SearchBox,
		Latest:    latest,
		Files:     files,
	}

	readme := filepath.Join(plan.Dir, ReadmeName)
	if src, err := os.ReadFile(readme); err == nil {
		intro, err := html.Markdown(src)
		if err != nil {
			b.logger.Warn("cannot render intro", "file", readme, "err", err)
		} else {
			page.Intro = intro
		}
	}

	path := filepath.Join(plan.Dir, IndexName)
	if err := writeAtomic(path, func(w io.Writer) error {
		return html.RenderIndex(w, page)
	}); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	return nil
}

func (b *builder) manifest(plan *Plan, latest string) error {
	path := filepath.Join(plan.Dir, manifest.FileName)
	prev, err := manifest.ReadFile(path)
	if err != nil {
		b.logger.Warn("discarding unreadable manifest", "file", path, "err", err)
		prev = &manifest.Manifest{}
	}

	m := &manifest.Manifest{Title: b.opts.Title, Latest: latest}
	for _, e := range plan.Entries {
		entry := manifest.NewEntry(e.LogFile)
		if s, ok := b.stats[e.Link]; ok {
			entry.Stats = s
		} else if old, ok := prev.Find(e.Link); ok {
			entry.Stats = old.Stats
		}
		m.Upsert(entry)
	}
	if err := m.WriteFile(path); err != nil {
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

func (b *builder) stylesheet(dir string) error {
	path := filepath.Join(dir, StylesheetName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(b.opts.Stylesheet)
		return err
	})
}
