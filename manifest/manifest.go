// Package manifest manages the archive listing file (manifest.json) written
// next to index.html, so tools can discover the days of an archive without
// scraping HTML.
package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	json "github.com/goccy/go-json"

	"github.com/sonnes/irclog/core"
)

// FileName is the manifest's name inside an archive directory.
const FileName = "manifest.json"

// Entry describes one rendered day.
type Entry struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Title  string `json:"title"`
	Link   string `json:"link"`
	Source string `json:"source"`
	// Stats is recorded when the day is rendered and carried over while
	// its page stays fresh.
	Stats *core.Stats `json:"stats,omitempty"`
}

// Manifest holds the list of days, newest first.
type Manifest struct {
	Title   string  `json:"title"`
	Latest  string  `json:"latest,omitempty"`
	Entries []Entry `json:"entries"`
}

// NewEntry describes f for the manifest.
func NewEntry(f *core.LogFile) Entry {
	return Entry{
		Date:   f.Date.Format(time.DateOnly),
		Title:  f.Title,
		Link:   f.Link,
		Source: filepath.Base(f.Path),
	}
}

// ReadFile reads a manifest from disk. Returns an empty Manifest if the file
// does not exist.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Find returns the entry with the given link.
func (m *Manifest) Find(link string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Link == link {
			return e, true
		}
	}
	return Entry{}, false
}

// Upsert adds or replaces an entry matched by Link. After upserting, the
// entries are sorted newest-first by Date.
func (m *Manifest) Upsert(entry Entry) {
	for i, e := range m.Entries {
		if e.Link == entry.Link {
			m.Entries[i] = entry
			m.sort()
			return
		}
	}
	m.Entries = append(m.Entries, entry)
	m.sort()
}

func (m *Manifest) sort() {
	sort.SliceStable(m.Entries, func(i, j int) bool {
		if m.Entries[i].Date != m.Entries[j].Date {
			return m.Entries[i].Date > m.Entries[j].Date
		}
		return m.Entries[i].Link > m.Entries[j].Link
	})
}

// WriteFile writes the manifest to disk atomically using a temporary file and
// rename, which is safe against concurrent readers.
func (m *Manifest) WriteFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".manifest-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
