package core

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateRE finds the last YYYY-MM-DD (or YYYYMMDD, YYYY_MM_DD, YYYY.MM.DD) date
// in a file name.
var dateRE = regexp.MustCompile(`^.*(\d{4})[-_.]?(\d{2})[-_.]?(\d{2})`)

// Date formats used for titles and navigation.
const (
	IndexTitleLayout = "2006-01-02 (Monday)"
	PageTitleLayout  = "Monday, 2006-01-02"
)

// LogFile is one dated transcript in an archive directory.
type LogFile struct {
	Path  string    // path to the source transcript (possibly .gz)
	Date  time.Time // calendar date embedded in the file name, UTC midnight
	Link  string    // base name of the rendered artifact
	Title string    // human readable date for the index, e.g. "2005-01-09 (Sunday)"
}

// NewLogFile builds a LogFile from a transcript path. The base name must embed
// a date; otherwise the error wraps ErrMissingDate.
func NewLogFile(path string) (*LogFile, error) {
	base := filepath.Base(path)
	date, err := ParseDate(base)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, path)
	}
	return &LogFile{
		Path:  path,
		Date:  date,
		Link:  OutputName(base),
		Title: date.Format(IndexTitleLayout),
	}, nil
}

// ParseDate extracts the calendar date embedded in a file name. Impossible
// dates such as 2005-13-40 are treated like missing ones.
func ParseDate(name string) (time.Time, error) {
	m := dateRE.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, ErrMissingDate
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return time.Time{}, ErrMissingDate
	}
	return d, nil
}

// OutputName derives the rendered artifact name from a source file name:
// "2005-01-09.log.gz" and "2005-01-09.log" both map to "2005-01-09.log.html".
func OutputName(name string) string {
	return strings.TrimSuffix(name, ".gz") + ".html"
}

// SourceName is the inverse of OutputName for an uncompressed source. Callers
// looking for a source should also try SourceName(link) + ".gz".
func SourceName(link string) (string, bool) {
	if !strings.HasSuffix(link, ".html") {
		return "", false
	}
	return strings.TrimSuffix(link, ".html"), true
}

// PageTitle is the heading of a rendered day, e.g. "Sunday, 2005-01-09".
func (f *LogFile) PageTitle() string {
	return f.Date.Format(PageTitleLayout)
}
