package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/irclog/colour"
	"github.com/sonnes/irclog/compact"
	"github.com/sonnes/irclog/config"
	"github.com/sonnes/irclog/convert"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/redact"
	"github.com/sonnes/irclog/render"
	htmlrender "github.com/sonnes/irclog/render/html"
	jsonrender "github.com/sonnes/irclog/render/json"
	"github.com/sonnes/irclog/render/terminal"
)

const defaultStyle = "xhtmltable"

type styleFunc func(w io.Writer, colours render.Colours) render.Renderer

type style struct {
	name        string
	description string
	html        bool
	new         styleFunc
}

// app holds the style registry and the loaded config file used by CLI
// commands.
type app struct {
	styles []style
	file   *config.File
	logger *log.Logger
}

func newApp() *app {
	a := &app{file: &config.File{}, logger: log.Default()}
	for _, s := range htmlrender.Styles {
		v := s.Variant
		a.styles = append(a.styles, style{
			name:        s.Name,
			description: s.Description,
			html:        true,
			new: func(w io.Writer, c render.Colours) render.Renderer {
				return htmlrender.New(w, v, c)
			},
		})
	}
	a.styles = append(a.styles,
		style{
			name:        "terminal",
			description: "ANSI colours for reading in a terminal",
			new:         func(w io.Writer, _ render.Colours) render.Renderer { return terminal.New(w) },
		},
		style{
			name:        "json",
			description: "One JSON record per line, for other tools",
			new:         func(w io.Writer, _ render.Colours) render.Renderer { return jsonrender.New(w, false) },
		},
	)
	return a
}

func (a *app) styleNames() []string {
	names := make([]string, len(a.styles))
	for i, s := range a.styles {
		names[i] = s.name
	}
	return names
}

func (a *app) style(name string) (style, error) {
	for _, s := range a.styles {
		if s.name == name {
			return s, nil
		}
	}
	return style{}, fmt.Errorf("%w %q (see `irclog styles`)", render.ErrUnknownStyle, name)
}

func (a *app) loadConfig(path string) error {
	f, err := config.Load(path, a.styleNames())
	if err != nil {
		return err
	}
	a.file = f
	return nil
}

// Shared flags.

var kindFlags = []struct {
	name string
	kind core.Kind
}{
	{"part", core.KindPart},
	{"join", core.KindJoin},
	{"server", core.KindServer},
	{"nickchange", core.KindNickChange},
	{"action", core.KindAction},
}

func styleFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "style",
		Aliases: []string{"s"},
		Usage:   "Output style; see `irclog styles`",
		Value:   defaultStyle,
	}
}

func colourFlags() []cli.Flag {
	defaults := render.DefaultColours()
	flags := make([]cli.Flag, 0, len(kindFlags))
	for _, k := range kindFlags {
		flags = append(flags, &cli.StringFlag{
			Name:    "colour-" + k.name,
			Aliases: []string{"color-" + k.name},
			Usage:   fmt.Sprintf("Colour of %s lines", k.name),
			Value:   defaults[k.kind],
		})
	}
	return flags
}

func readerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "dircproxy",
			Usage: "Strip the +/- dircproxy writes after each timestamp",
		},
		&cli.BoolFlag{
			Name:  "strip-formatting",
			Usage: "Remove mIRC bold, colour and underline codes",
		},
		&cli.BoolFlag{
			Name:  "redact",
			Usage: "Mask secrets and personal data (e-mail and IP addresses, hostmasks)",
		},
		&cli.BoolFlag{
			Name:  "compact",
			Usage: "Hide joins, parts and server notices",
		},
		&cli.StringSliceFlag{
			Name:  "compact-kinds",
			Usage: "Line kinds to hide, from join, part, server and other (implies --compact)",
		},
	}
}

// Flag and config merging: an explicitly set flag wins over the config file,
// which wins over the flag default.

func stringOpt(cmd *cli.Command, name, fromFile string) string {
	if cmd.IsSet(name) || fromFile == "" {
		return cmd.String(name)
	}
	return fromFile
}

func boolOpt(cmd *cli.Command, name string, fromFile bool) bool {
	if cmd.IsSet(name) {
		return cmd.Bool(name)
	}
	return fromFile || cmd.Bool(name)
}

func (a *app) colours(cmd *cli.Command) (render.Colours, error) {
	fromFile := map[core.Kind]string{
		core.KindPart:       a.file.Colours.Part,
		core.KindJoin:       a.file.Colours.Join,
		core.KindServer:     a.file.Colours.Server,
		core.KindNickChange: a.file.Colours.NickChange,
		core.KindAction:     a.file.Colours.Action,
	}
	c := render.Colours{}
	for _, k := range kindFlags {
		v := stringOpt(cmd, "colour-"+k.name, fromFile[k.kind])
		if !config.IsColour(v) {
			return nil, fmt.Errorf("--colour-%s: %q is not a #rrggbb colour", k.name, v)
		}
		c[k.kind] = v
	}
	return c, nil
}

func (a *app) converter(cmd *cli.Command) (*convert.Converter, error) {
	var ts []core.Transformer
	if boolOpt(cmd, "strip-formatting", a.file.StripFormatting) {
		ts = append(ts, core.Plain{})
	}
	if boolOpt(cmd, "redact", a.file.Redact) {
		rc, err := a.file.RedactConfig()
		if err != nil {
			return nil, err
		}
		r, err := redact.New(rc)
		if err != nil {
			return nil, err
		}
		ts = append(ts, r)
	}
	if boolOpt(cmd, "compact", a.file.Compact) || cmd.IsSet("compact-kinds") {
		hide, err := a.file.HiddenKinds()
		if cmd.IsSet("compact-kinds") {
			hide, err = compact.ParseKinds(cmd.StringSlice("compact-kinds"))
		}
		if err != nil {
			return nil, fmt.Errorf("--compact-kinds: %w", err)
		}
		ts = append(ts, compact.New(compact.Config{Hide: hide}))
	}
	return convert.New(convert.Config{
		Nicks:        colour.TableConfig{Defaults: a.file.NickColours()},
		Transformers: ts,
	}), nil
}
