package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/render"
)

func convertCmd(a *app) *cli.Command {
	flags := []cli.Flag{
		styleFlag(),
		&cli.StringFlag{
			Name:    "title",
			Aliases: []string{"t"},
			Usage:   "Page title (default: the file name)",
		},
		&cli.StringFlag{Name: "prev-url", Usage: "URL of the previous log"},
		&cli.StringFlag{Name: "prev-title", Usage: "Title of the previous log", Value: "« Prev"},
		&cli.StringFlag{Name: "index-url", Usage: "URL of the index page"},
		&cli.StringFlag{Name: "index-title", Usage: "Title of the index page", Value: "Index"},
		&cli.StringFlag{Name: "next-url", Usage: "URL of the next log"},
		&cli.StringFlag{Name: "next-title", Usage: "Title of the next log", Value: "Next »"},
		&cli.BoolFlag{
			Name:    "searchbox",
			Aliases: []string{"S"},
			Usage:   "Include a search box",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output file, - for stdout (default: FILE.html next to the log for HTML styles, stdout otherwise)",
		},
	}
	flags = append(flags, colourFlags()...)
	flags = append(flags, readerFlags()...)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Colourise IRC logs and convert them to HTML",
		ArgsUsage: "FILE...",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("at least one log file is required")
			}
			output := cmd.String("output")
			if len(files) > 1 && output != "" {
				return fmt.Errorf("--output needs exactly one input file")
			}

			st, err := a.style(stringOpt(cmd, "style", a.file.Style))
			if err != nil {
				return err
			}
			colours, err := a.colours(cmd)
			if err != nil {
				return err
			}
			conv, err := a.converter(cmd)
			if err != nil {
				return err
			}
			rd := reader.New(reader.Config{Dircproxy: boolOpt(cmd, "dircproxy", a.file.Dircproxy)})

			for _, file := range files {
				events, err := rd.ReadFile(file)
				if err != nil {
					return err
				}
				page := convertPage(cmd, file, boolOpt(cmd, "searchbox", a.file.SearchBox))

				dst := output
				if dst == "" && st.html {
					dst = filepath.Join(filepath.Dir(file), core.OutputName(filepath.Base(file)))
				}
				err = writeOutput(cmd.Root().Writer, dst, func(w io.Writer) error {
					return conv.Convert(events, st.new(w, colours), page)
				})
				if err != nil {
					return err
				}
				a.logger.Info("converted", "file", file, "output", dst, "lines", len(events))
			}
			return nil
		},
	}
}

func convertPage(cmd *cli.Command, file string, searchbox bool) render.Page {
	title := cmd.String("title")
	if title == "" {
		title = file
	}
	link := func(kind string) render.Link {
		url := cmd.String(kind + "-url")
		if url == "" {
			return render.Link{}
		}
		return render.Link{URL: url, Title: cmd.String(kind + "-title")}
	}
	return render.Page{
		Title:     title,
		Prev:      link("prev"),
		Index:     link("index"),
		Next:      link("next"),
		SearchBox: searchbox,
	}
}

// writeOutput runs write against path, or stdout when path is "" or "-".
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return &core.FileError{Op: "create", Path: path, Err: err}
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &core.FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
