// Package terminal renders transcripts as ANSI-coloured lines for reading a
// log in a terminal.
package terminal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/render"
)

const defaultWidth = 100

// Renderer prints a transcript with nicks in their assigned colours.
type Renderer struct {
	// Width overrides terminal width detection. Zero means auto-detect.
	Width int

	w     io.Writer
	width int
	err   error
}

// New creates a terminal Renderer writing to w.
func New(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Head writes the page title and navigation targets.
func (r *Renderer) Head(p render.Page) error {
	r.width = r.termWidth()
	r.println(styleTitle.Render(p.Title))

	var nav []string
	for _, l := range []render.Link{p.Prev, p.Index, p.Next} {
		if l.URL != "" {
			nav = append(nav, l.Title+" ("+l.URL+")")
		}
	}
	if len(nav) > 0 {
		r.println(styleMeta.Render(strings.Join(nav, "  ")))
	}
	r.separator()
	return r.err
}

// Foot closes the transcript with a rule.
func (r *Renderer) Foot() error {
	r.separator()
	return r.err
}

// ServerMessage writes a non-comment line in its kind's colour.
func (r *Renderer) ServerMessage(time string, kind core.Kind, text string) error {
	text = render.PlainText(text)
	r.println(r.prefix(time) + kindStyle(kind).Render(truncate(text, r.contentWidth(time, ""))))
	return r.err
}

// NickText writes a comment with the nick in its colour.
func (r *Renderer) NickText(time, nick, text, colour string) error {
	nick = render.PlainText(nick)
	text = render.PlainText(text)
	r.println(r.prefix(time) + nickStyle(colour).Render("<"+nick+">") + " " +
		truncate(text, r.contentWidth(time, nick)))
	return r.err
}

func (r *Renderer) prefix(time string) string {
	if time == "" {
		return ""
	}
	return styleTime.Render(time) + " "
}

// contentWidth is what remains of the line after the time and nick columns.
func (r *Renderer) contentWidth(time, nick string) int {
	used := 0
	if time != "" {
		used += lipgloss.Width(time) + 1
	}
	if nick != "" {
		used += lipgloss.Width(nick) + 3
	}
	return max(r.width-used, 20)
}

func (r *Renderer) termWidth() int {
	if r.Width > 0 {
		return r.Width
	}
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}

func (r *Renderer) separator() {
	r.println(styleSeparator.Render(strings.Repeat("─", min(r.width, 72))))
}

// println records the first write error; later calls become no-ops.
func (r *Renderer) println(s string) {
	if r.err != nil {
		return
	}
	if _, err := fmt.Fprintln(r.w, s); err != nil {
		r.err = fmt.Errorf("write terminal: %w", err)
	}
}

// truncate shortens text to maxWidth, appending "..." if needed.
func truncate(s string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}

	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > maxWidth {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
