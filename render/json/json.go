// Package json renders transcripts as newline-delimited JSON records, one per
// line of the log, for feeding other tools.
package json

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/render"
)

// Record types.
const (
	TypeHead = "head"
	TypeLine = "line"
	TypeFoot = "foot"
)

// Record is one output line.
type Record struct {
	Type   string       `json:"type"`
	Title  string       `json:"title,omitempty"`
	Prev   *render.Link `json:"prev,omitempty"`
	Index  *render.Link `json:"index,omitempty"`
	Next   *render.Link `json:"next,omitempty"`
	Time   string       `json:"time,omitempty"`
	Kind   core.Kind    `json:"kind,omitempty"`
	Nick   string       `json:"nick,omitempty"`
	Colour string       `json:"colour,omitempty"`
	Text   string       `json:"text,omitempty"`
	HTML   string       `json:"html,omitempty"`
	Lines  int          `json:"lines,omitempty"`
}

// Renderer writes one Record per call.
type Renderer struct {
	// Indent controls pretty-printing. When true, records span several lines.
	Indent bool

	enc   *json.Encoder
	lines int
}

// New creates a JSON Renderer writing to w.
func New(w io.Writer, indent bool) *Renderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	return &Renderer{Indent: indent, enc: enc}
}

func (r *Renderer) Head(p render.Page) error {
	r.lines = 0
	return r.encode(Record{
		Type:  TypeHead,
		Title: p.Title,
		Prev:  link(p.Prev),
		Index: link(p.Index),
		Next:  link(p.Next),
	})
}

func (r *Renderer) Foot() error {
	return r.encode(Record{Type: TypeFoot, Lines: r.lines})
}

func (r *Renderer) ServerMessage(time string, kind core.Kind, text string) error {
	r.lines++
	return r.encode(Record{
		Type: TypeLine,
		Time: time,
		Kind: kind,
		Text: render.PlainText(text),
		HTML: text,
	})
}

func (r *Renderer) NickText(time, nick, text, colour string) error {
	r.lines++
	return r.encode(Record{
		Type:   TypeLine,
		Time:   time,
		Kind:   core.KindComment,
		Nick:   render.PlainText(nick),
		Colour: colour,
		Text:   render.PlainText(text),
		HTML:   text,
	})
}

func (r *Renderer) encode(rec Record) error {
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("encode %s record: %w", rec.Type, err)
	}
	return nil
}

func link(l render.Link) *render.Link {
	if l.URL == "" {
		return nil
	}
	return &l
}
