// Package html renders transcripts as HTML pages in one of several styles,
// from plain <tt> text with coloured nicks to XHTML tables styled by
// irclog.css. It also renders the archive index page.
package html

import (
	"fmt"
	"io"
	"strconv"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/render"
)

// Variant selects an HTML style. The set is closed.
type Variant int

const (
	SimpleText Variant = iota
	Text
	SimpleTable
	Table
	XHTML
	XHTMLTable
)

// Style describes a variant for style listings.
type Style struct {
	Name        string
	Description string
	Variant     Variant
}

// Styles lists the HTML styles in the order they are offered.
var Styles = []Style{
	{"simplett", "Text style with little use of colour", SimpleText},
	{"tt", "Text style using colours for each nick", Text},
	{"simpletable", "Table style, without heavy use of colour", SimpleTable},
	{"table", "Table style, using a table with bold colours", Table},
	{"xhtml", "XHTML 1.0 Strict, styled with irclog.css", XHTML},
	{"xhtmltable", "XHTML 1.0 Strict table, styled with irclog.css (default)", XHTMLTable},
}

// Lookup finds an HTML style by name.
func Lookup(name string) (Style, error) {
	for _, s := range Styles {
		if s.Name == name {
			return s, nil
		}
	}
	return Style{}, fmt.Errorf("%w %q", render.ErrUnknownStyle, name)
}

// Renderer writes one HTML document in the chosen variant.
type Renderer struct {
	w       io.Writer
	variant Variant
	colours render.Colours
	page    render.Page
	anchors map[string]int
}

// New creates a Renderer writing to w. colours may be nil; the xhtml variants
// ignore it in favour of CSS classes.
func New(w io.Writer, v Variant, colours render.Colours) *Renderer {
	return &Renderer{
		w:       w,
		variant: v,
		colours: colours,
		anchors: make(map[string]int),
	}
}

// NewXHTMLTable is a shortcut for the default style.
func NewXHTMLTable(w io.Writer) *Renderer {
	return New(w, XHTMLTable, nil)
}

func (r *Renderer) legacy() bool { return r.variant < XHTML }

func (r *Renderer) tabular() bool {
	return r.variant == SimpleTable || r.variant == Table || r.variant == XHTMLTable
}

// Head writes the document header and opens the message container.
func (r *Renderer) Head(p render.Page) error {
	r.page = p
	name := "xhtml_head"
	if r.legacy() {
		name = "legacy_head"
	}
	if err := pageTemplates.ExecuteTemplate(r.w, name, p); err != nil {
		return fmt.Errorf("render head: %w", err)
	}

	switch r.variant {
	case SimpleTable, Table:
		return r.printf("<table cellspacing=3 cellpadding=2 border=0>\n")
	case XHTMLTable:
		return r.printf("<table class=\"irclog\">\n")
	}
	return nil
}

// Foot closes the message container and writes the document footer.
func (r *Renderer) Foot() error {
	if r.tabular() {
		if err := r.printf("</table>\n"); err != nil {
			return err
		}
	}
	name := "xhtml_foot"
	if r.legacy() {
		name = "legacy_foot"
	}
	if err := pageTemplates.ExecuteTemplate(r.w, name, r.page); err != nil {
		return fmt.Errorf("render foot: %w", err)
	}
	return nil
}

// ServerMessage writes a non-comment line.
func (r *Renderer) ServerMessage(time string, kind core.Kind, text string) error {
	switch r.variant {
	case SimpleText, Text, SimpleTable, Table:
		if c := r.colours[kind]; c != "" {
			text = `<font color="` + c + `">` + text + `</font>`
		}
		if r.tabular() {
			return r.printf("<tr><td colspan=2><tt>%s</tt></td></tr>\n", text)
		}
		return r.printf("%s<br>\n", text)
	case XHTML:
		id := r.anchor(time)
		return r.printf("<p%s class=\"%s\">%s%s</p>\n", idAttr(id), kind, timeLink(id, time, " "), text)
	default:
		id := r.anchor(time)
		return r.printf("<tr%s><td class=\"%s\" colspan=\"2\">%s</td><td class=\"time\">%s</td></tr>\n",
			idAttr(id), kind, text, timeLink(id, time, ""))
	}
}

// NickText writes a comment.
func (r *Renderer) NickText(time, nick, text, colour string) error {
	switch r.variant {
	case SimpleText:
		return r.printf("&lt;%s&gt; %s<br>\n", nick, text)
	case Text:
		return r.printf("<font color=\"%s\">&lt;%s&gt;</font> <font color=\"#000000\">%s</font><br>\n",
			colour, nick, text)
	case SimpleTable:
		return r.printf("<tr bgcolor=\"#eeeeee\"><th><font color=\"%s\"><tt>%s</tt></font></th>"+
			"<td width=\"100%%\"><tt>%s</tt></td></tr>\n", colour, nick, text)
	case Table:
		return r.printf("<tr><th bgcolor=\"%s\"><font color=\"#ffffff\"><tt>%s</tt></font></th>"+
			"<td width=\"100%%\" bgcolor=\"#eeeeee\"><tt><font color=\"%s\">%s</font></tt></td></tr>\n",
			colour, nick, colour, text)
	case XHTML:
		id := r.anchor(time)
		return r.printf("<p%s class=\"comment\">%s<span class=\"nick\" style=\"color: %s\">&lt;%s&gt;</span> "+
			"<span class=\"text\">%s</span></p>\n", idAttr(id), timeLink(id, time, " "), colour, nick, text)
	default:
		id := r.anchor(time)
		return r.printf("<tr%s><th class=\"nick\" style=\"background: %s\">%s</th>"+
			"<td class=\"text\" style=\"color: %s\">%s</td><td class=\"time\">%s</td></tr>\n",
			idAttr(id), colour, nick, colour, text, timeLink(id, time, ""))
	}
}

// anchor returns a unique element id for a timestamp, or "" when the line has
// none. Repeated timestamps get a numeric suffix.
func (r *Renderer) anchor(time string) string {
	if time == "" {
		return ""
	}
	id := "t" + time
	n := r.anchors[id]
	r.anchors[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

func idAttr(id string) string {
	if id == "" {
		return ""
	}
	return ` id="` + id + `"`
}

func timeLink(id, time, sep string) string {
	if id == "" {
		return ""
	}
	return `<a href="#` + id + `" class="time">` + time + `</a>` + sep
}

func (r *Renderer) printf(format string, args ...any) error {
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}
