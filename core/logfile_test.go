package core

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "iso date", in: "2005-01-09.log", want: time.Date(2005, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "compact date", in: "20050109.log", want: time.Date(2005, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "channel prefix", in: "#zope.2005-01-09.log", want: time.Date(2005, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "underscores", in: "log_2013_11_30.txt", want: time.Date(2013, 11, 30, 0, 0, 0, 0, time.UTC)},
		{name: "mixed separators", in: "2013-1130.log", want: time.Date(2013, 11, 30, 0, 0, 0, 0, time.UTC)},
		{name: "gz suffix", in: "2005-01-09.log.gz", want: time.Date(2005, 1, 9, 0, 0, 0, 0, time.UTC)},
		{name: "no date", in: "notes.log", wantErr: true},
		{name: "short digits", in: "2005-1-9.log", wantErr: true},
		{name: "impossible month", in: "2005-13-01.log", wantErr: true},
		{name: "impossible day", in: "2005-02-30.log", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogFile(t *testing.T) {
	f, err := NewLogFile("/var/irclogs/2005-01-09.log.gz")
	require.NoError(t, err)

	assert.Equal(t, "/var/irclogs/2005-01-09.log.gz", f.Path)
	assert.Equal(t, "2005-01-09.log.html", f.Link)
	assert.Equal(t, "2005-01-09 (Sunday)", f.Title)
	assert.Equal(t, "Sunday, 2005-01-09", f.PageTitle())
}

func TestNewLogFileMissingDate(t *testing.T) {
	_, err := NewLogFile("/var/irclogs/today.log")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDate))
	assert.Contains(t, err.Error(), "/var/irclogs/today.log")
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "2005-01-09.log.html", OutputName("2005-01-09.log"))
	assert.Equal(t, "2005-01-09.log.html", OutputName("2005-01-09.log.gz"))
	assert.Equal(t, "chan.txt.html", OutputName("chan.txt"))
}

func TestSourceName(t *testing.T) {
	src, ok := SourceName("2005-01-09.log.html")
	assert.True(t, ok)
	assert.Equal(t, "2005-01-09.log", src)

	_, ok = SourceName("irclog.css")
	assert.False(t, ok)
}

func TestFileError(t *testing.T) {
	inner := errors.New("permission denied")
	err := &FileError{Op: "write", Path: "/tmp/x.html", Err: inner}
	assert.Equal(t, "cannot write /tmp/x.html: permission denied", err.Error())
	assert.ErrorIs(t, err, inner)
}
