package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonnes/irclog/core"
)

func entry(t *testing.T, name string) Entry {
	t.Helper()
	f, err := core.NewLogFile(filepath.Join("/logs", name))
	require.NoError(t, err)
	return NewEntry(f)
}

func TestNewEntry(t *testing.T) {
	e := entry(t, "#zope.2005-01-09.log.gz")
	assert.Equal(t, Entry{
		Date:   "2005-01-09",
		Title:  "2005-01-09 (Sunday)",
		Link:   "#zope.2005-01-09.log.html",
		Source: "#zope.2005-01-09.log.gz",
	}, e)
}

func TestReadFileNotExist(t *testing.T) {
	m, err := ReadFile(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Empty(t, m.Entries)
}

func TestReadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := ReadFile(path)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)

	m := &Manifest{Title: "IRC logs", Latest: "latest.log.html"}
	m.Upsert(entry(t, "2005-01-08.log"))
	require.NoError(t, m.WriteFile(path))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".manifest-*"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp file renamed away")

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm(), "readable by a web server")
}

func TestUpsertOrder(t *testing.T) {
	m := &Manifest{}
	m.Upsert(entry(t, "2005-01-08.log"))
	m.Upsert(entry(t, "2005-01-10.log"))
	m.Upsert(entry(t, "2005-01-09.log"))

	require.Len(t, m.Entries, 3)
	assert.Equal(t, "2005-01-10", m.Entries[0].Date, "newest first")
	assert.Equal(t, "2005-01-09", m.Entries[1].Date)
	assert.Equal(t, "2005-01-08", m.Entries[2].Date)
}

func TestUpsertReplace(t *testing.T) {
	m := &Manifest{}
	m.Upsert(entry(t, "2005-01-08.log"))
	e := entry(t, "2005-01-08.log")
	e.Source = "2005-01-08.log.gz"
	m.Upsert(e)

	require.Len(t, m.Entries, 1)
	assert.Equal(t, "2005-01-08.log.gz", m.Entries[0].Source)
}

func TestFind(t *testing.T) {
	m := &Manifest{}
	e := entry(t, "2005-01-08.log")
	e.Stats = &core.Stats{Lines: 4, Comments: 2, Nicks: 1}
	m.Upsert(e)
	m.Upsert(entry(t, "2005-01-09.log"))

	got, ok := m.Find("2005-01-08.log.html")
	require.True(t, ok)
	assert.Equal(t, 4, got.Stats.Lines)

	_, ok = m.Find("2005-01-07.log.html")
	assert.False(t, ok)
}
