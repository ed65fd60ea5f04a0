package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/sonnes/irclog/core"
)

// Entry is one day of the archive with its neighbours.
type Entry struct {
	*core.LogFile
	// Artifact is the path of the rendered page.
	Artifact string
	// IsNew reports that the artifact did not exist when the plan was made.
	IsNew bool
	// Prev is the previous (older) day, Next the following (newer) one.
	Prev, Next *Entry
}

// Plan is the ordered set of days in an archive directory, newest first.
type Plan struct {
	Dir     string
	Entries []*Entry
}

// Discover lists the transcripts in dir matching pattern or pattern+".gz",
// ordered by date and then by name. A file without a date in its name fails
// the whole discovery. When a log and its gzipped copy both exist they render
// to the same page; the uncompressed one is kept and the other is logged at
// warn level. A nil logger uses log.Default().
func Discover(dir, pattern string, logger *log.Logger) ([]*core.LogFile, error) {
	if logger == nil {
		logger = log.Default()
	}
	var paths []string
	for _, p := range []string{pattern, pattern + ".gz"} {
		m, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", p, err)
		}
		paths = append(paths, m...)
	}

	seen := make(map[string]bool, len(paths))
	byLink := make(map[string]int, len(paths))
	files := make([]*core.LogFile, 0, len(paths))
	for _, p := range paths {
		if seen[p] {
			continue
		}
		seen[p] = true
		f, err := core.NewLogFile(p)
		if err != nil {
			return nil, err
		}
		i, dup := byLink[f.Link]
		if !dup {
			byLink[f.Link] = len(files)
			files = append(files, f)
			continue
		}
		kept, skipped := files[i], f
		if compressed(kept) && !compressed(f) {
			kept, skipped = f, kept
			files[i] = kept
		}
		logger.Warn("ignoring duplicate log", "file", skipped.Path, "using", kept.Path)
	}

	sort.Slice(files, func(i, j int) bool {
		if !files[i].Date.Equal(files[j].Date) {
			return files[i].Date.Before(files[j].Date)
		}
		return filepath.Base(files[i].Path) < filepath.Base(files[j].Path)
	})
	return files, nil
}

func compressed(f *core.LogFile) bool { return strings.HasSuffix(f.Path, ".gz") }

// NewPlan links files (in ascending order, as returned by Discover) into a
// newest-first plan. IsNew is fixed here, before anything is written.
func NewPlan(dir string, files []*core.LogFile) *Plan {
	p := &Plan{Dir: dir, Entries: make([]*Entry, len(files))}
	for i, f := range files {
		artifact := filepath.Join(dir, f.Link)
		_, err := os.Stat(artifact)
		p.Entries[len(files)-1-i] = &Entry{
			LogFile:  f,
			Artifact: artifact,
			IsNew:    err != nil,
		}
	}
	for i, e := range p.Entries {
		if i > 0 {
			e.Next = p.Entries[i-1]
		}
		if i+1 < len(p.Entries) {
			e.Prev = p.Entries[i+1]
		}
	}
	return p
}

// Newest returns the most recent day, or nil for an empty plan.
func (p *Plan) Newest() *Entry {
	if len(p.Entries) == 0 {
		return nil
	}
	return p.Entries[0]
}

// Stale reports whether the entry's page must be regenerated: it is forced,
// new, older than its source, or a neighbour is new (its navigation links
// changed).
func (e *Entry) Stale(force bool) (bool, error) {
	if force || e.IsNew {
		return true, nil
	}
	if (e.Prev != nil && e.Prev.IsNew) || (e.Next != nil && e.Next.IsNew) {
		return true, nil
	}
	src, err := os.Stat(e.Path)
	if err != nil {
		return false, &core.FileError{Op: "stat", Path: e.Path, Err: err}
	}
	dst, err := os.Stat(e.Artifact)
	if err != nil {
		return true, nil
	}
	return !dst.ModTime().After(src.ModTime()), nil
}
