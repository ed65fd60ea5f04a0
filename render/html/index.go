package html

import (
	"html/template"
	"io"

	"github.com/sonnes/irclog/core"
)

// IndexPage is the data for an archive index.
type IndexPage struct {
	Title     string
	SearchBox bool
	// Latest, when set, adds a bookmarkable link to the newest day.
	Latest string
	// Intro is optional HTML shown under the heading.
	Intro template.HTML
	// Files are listed in the given order.
	Files []*core.LogFile
}

// RenderIndex writes an index page with one entry per log file.
func RenderIndex(w io.Writer, p IndexPage) error {
	return pageTemplates.ExecuteTemplate(w, "index.html", p)
}

type channelsData struct {
	Title    string
	Channels []string
}

// RenderChannels writes a listing of channel directories.
func RenderChannels(w io.Writer, title string, channels []string) error {
	return pageTemplates.ExecuteTemplate(w, "channels.html", channelsData{Title: title, Channels: channels})
}
