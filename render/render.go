// Package render defines the interface output styles implement. The converter
// drives a Renderer with a page header, one call per classified line and a
// footer; styles decide what the output looks like.
package render

import (
	"errors"

	"github.com/sonnes/irclog/core"
)

// ErrUnknownStyle is returned when a style name is not registered.
var ErrUnknownStyle = errors.New("unknown style")

// Renderer writes one transcript document.
//
// Text passed to ServerMessage and NickText is already HTML-escaped and may
// contain <a> links and &nbsp; entities. Colours are lower-case "#rrggbb".
type Renderer interface {
	Head(p Page) error
	Foot() error
	ServerMessage(time string, kind core.Kind, text string) error
	NickText(time, nick, text, colour string) error
}

// Link is a navigation link. An empty URL means the link is absent.
type Link struct {
	URL   string
	Title string
}

// Page holds document-level data for the header and footer.
type Page struct {
	Title     string
	Charset   string // defaults to UTF-8
	Prev      Link
	Index     Link
	Next      Link
	SearchBox bool
}

// HasNav reports whether any navigation link is set.
func (p Page) HasNav() bool {
	return p.Prev.URL != "" || p.Index.URL != "" || p.Next.URL != ""
}

// Colours maps event kinds to the colour their lines are shown in. Styles
// that use CSS classes ignore it.
type Colours map[core.Kind]string

// DefaultColours returns the stock per-kind colours.
func DefaultColours() Colours {
	return Colours{
		core.KindPart:       "#000099",
		core.KindJoin:       "#009900",
		core.KindServer:     "#009900",
		core.KindNickChange: "#009900",
		core.KindAction:     "#cc00cc",
	}
}
