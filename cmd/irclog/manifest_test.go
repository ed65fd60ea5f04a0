package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/manifest"
	"github.com/sonnes/irclog/reader"
)

// setupArchive writes the given logs into a temp dir, plus a rendered page
// for each name in pages.
func setupArchive(t *testing.T, logs map[string]string, pages []string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range logs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	for _, name := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("<html>"), 0o644))
	}
	return dir
}

func TestRepairManifest(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte(sampleLog))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name        string
		logs        map[string]string
		pages       []string
		wantLinks   []string
		wantSkipped int
		wantErr     bool
	}{
		{
			name:      "two rendered days",
			logs:      map[string]string{"2005-01-01.log": sampleLog, "2005-01-02.log": sampleLog},
			pages:     []string{"2005-01-01.log.html", "2005-01-02.log.html"},
			wantLinks: []string{"2005-01-02.log.html", "2005-01-01.log.html"},
		},
		{
			name:        "day without a page",
			logs:        map[string]string{"2005-01-01.log": sampleLog, "2005-01-02.log": sampleLog},
			pages:       []string{"2005-01-01.log.html"},
			wantLinks:   []string{"2005-01-01.log.html"},
			wantSkipped: 1,
		},
		{
			name:      "gzipped log",
			logs:      map[string]string{"2005-01-03.log.gz": gz.String()},
			pages:     []string{"2005-01-03.log.html"},
			wantLinks: []string{"2005-01-03.log.html"},
		},
		{
			name:        "corrupt gzip",
			logs:        map[string]string{"2005-01-03.log.gz": "not gzip"},
			pages:       []string{"2005-01-03.log.html"},
			wantSkipped: 1,
		},
		{
			name:    "undated log",
			logs:    map[string]string{"notes.log": sampleLog},
			wantErr: true,
		},
		{
			name: "empty directory",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupArchive(t, tt.logs, tt.pages)

			m, skipped, err := repairManifest(dir, "*.log", reader.New(reader.Config{}), log.New(io.Discard))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkipped, skipped)

			var links []string
			for _, e := range m.Entries {
				links = append(links, e.Link)
				assert.Equal(t, &core.Stats{Lines: 3, Comments: 2, Nicks: 2}, e.Stats, e.Link)
			}
			assert.Equal(t, tt.wantLinks, links)
		})
	}
}

func TestManifestCommand(t *testing.T) {
	dir := setupArchive(t,
		map[string]string{"2005-01-01.log": sampleLog},
		[]string{"2005-01-01.log.html"})
	require.NoError(t, os.Symlink("2005-01-01.log.html", filepath.Join(dir, "latest.log.html")))

	out, err := run(t, quietApp(), "manifest", "-t", "Zope logs", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 entries (0 skipped)")

	m, err := manifest.ReadFile(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Zope logs", m.Title)
	assert.Equal(t, "2005-01-01.log.html", m.Latest)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "2005-01-01", m.Entries[0].Date)
}
