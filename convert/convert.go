// Package convert turns classified events into calls on a render.Renderer:
// text is escaped and linkified, and each nick gets a stable colour for the
// length of one document.
package convert

import (
	"regexp"
	"strings"

	"github.com/sonnes/irclog/colour"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/render"
)

// urlRE runs over escaped text, so a URL ends at whitespace, a quote or an
// escaped angle bracket. &amp; stays part of the URL.
var urlRE = regexp.MustCompile(`(?:http|https|ftp|gopher|news)://(?:&amp;|[^\s&"<>])+`)

// Config controls a Converter.
type Config struct {
	// Nicks configures the colour table created for each document.
	Nicks colour.TableConfig
	// Transformers run on every event before it is rendered. An event a
	// transformer drops is not rendered at all.
	Transformers []core.Transformer
}

// Converter renders event streams. It holds no per-document state and may be
// reused.
type Converter struct {
	cfg Config
}

// New creates a Converter.
func New(cfg Config) *Converter {
	return &Converter{cfg: cfg}
}

// Convert writes one document: the page header, a line per event and the
// footer.
func (c *Converter) Convert(events []core.Event, r render.Renderer, page render.Page) error {
	nicks := colour.NewTable(c.cfg.Nicks)
	if err := r.Head(page); err != nil {
		return err
	}
	for i := range events {
		e := events[i]
		if !core.Chain(&e, c.cfg.Transformers...) {
			continue
		}
		if err := c.line(e, nicks, r); err != nil {
			return err
		}
	}
	return r.Foot()
}

func (c *Converter) line(e core.Event, nicks *colour.Table, r render.Renderer) error {
	if e.Kind == core.KindComment {
		text := CreateLinks(Escape(e.Text))
		text = strings.ReplaceAll(text, "  ", "&nbsp;&nbsp;")
		return r.NickText(e.Time, Escape(e.Nick), text, nicks.Colour(e.Nick))
	}

	if e.Kind == core.KindNickChange {
		nicks.Rename(e.OldNick, e.NewNick)
	}
	return r.ServerMessage(e.Time, e.Kind, CreateLinks(Escape(e.Text)))
}

// Escape drops control characters and escapes &, < and > for HTML.
func Escape(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, s)
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

// CreateLinks wraps URLs in already-escaped text in links to themselves.
func CreateLinks(text string) string {
	return urlRE.ReplaceAllString(text, `<a href="$0">$0</a>`)
}
