package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/irclog/archive"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/render"
)

func buildCmd(a *app) *cli.Command {
	flags := []cli.Flag{
		styleFlag(),
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Title of the index page",
			Value:   archive.DefaultTitle,
		},
		&cli.StringFlag{
			Name:    "prefix",
			Aliases: []string{"p"},
			Usage:   `Prefix for page titles, e.g. "IRC log of #channel for "`,
		},
		&cli.BoolFlag{
			Name:    "force",
			Aliases: []string{"f"},
			Usage:   "Regenerate every page",
		},
		&cli.BoolFlag{
			Name:    "searchbox",
			Aliases: []string{"S"},
			Usage:   "Include a search box",
		},
		&cli.StringFlag{
			Name:    "glob-pattern",
			Aliases: []string{"g"},
			Usage:   "Pattern of log file names; gzipped files matching PATTERN.gz are included",
			Value:   archive.DefaultPattern,
			Sources: cli.EnvVars("IRCLOG_GLOB"),
		},
	}
	flags = append(flags, colourFlags()...)
	flags = append(flags, readerFlags()...)

	return &cli.Command{
		Name:      "build",
		Usage:     "Render a directory of daily logs as a linked archive",
		ArgsUsage: "DIR",
		Description: `Renders every log whose page is missing or older than the log, plus the
neighbours of new days, then rewrites index.html and latest.log.html.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("exactly one directory is required")
			}
			dir := cmd.Args().First()

			st, err := a.style(stringOpt(cmd, "style", a.file.Style))
			if err != nil {
				return err
			}
			if !st.html {
				return fmt.Errorf("style %q does not produce HTML pages", st.name)
			}
			colours, err := a.colours(cmd)
			if err != nil {
				return err
			}
			conv, err := a.converter(cmd)
			if err != nil {
				return err
			}

			res, err := archive.Build(ctx, dir, archive.Options{
				Pattern:   stringOpt(cmd, "glob-pattern", a.file.Pattern),
				Force:     boolOpt(cmd, "force", a.file.Force),
				Title:     stringOpt(cmd, "title", a.file.Title),
				Prefix:    stringOpt(cmd, "prefix", a.file.Prefix),
				SearchBox: boolOpt(cmd, "searchbox", a.file.SearchBox),
				Style: func(w io.Writer) render.Renderer {
					return st.new(w, colours)
				},
				Converter: conv,
				Reader:    reader.Config{Dircproxy: boolOpt(cmd, "dircproxy", a.file.Dircproxy)},
				Logger:    a.logger,
			})
			if res != nil {
				a.logger.Info("archive built", "dir", dir,
					"generated", len(res.Generated), "skipped", len(res.Skipped))
			}
			return err
		},
	}
}
