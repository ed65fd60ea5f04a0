package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/irclog/archive"
	"github.com/sonnes/irclog/core"
	"github.com/sonnes/irclog/manifest"
	"github.com/sonnes/irclog/reader"
)

func manifestCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:      "manifest",
		Usage:     "Rebuild manifest.json by scanning an archive directory",
		ArgsUsage: "DIR",
		Description: `Lists every day whose page has been rendered, re-reading the logs for
line counts, and rewrites manifest.json. Pages are not touched.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "title",
				Aliases: []string{"t"},
				Usage:   "Title recorded in the manifest",
				Value:   archive.DefaultTitle,
			},
			&cli.StringFlag{
				Name:    "glob-pattern",
				Aliases: []string{"g"},
				Usage:   "Pattern of log file names",
				Value:   archive.DefaultPattern,
				Sources: cli.EnvVars("IRCLOG_GLOB"),
			},
			&cli.BoolFlag{
				Name:  "dircproxy",
				Usage: "Strip the +/- dircproxy writes after each timestamp",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("exactly one directory is required")
			}
			dir := cmd.Args().First()
			rd := reader.New(reader.Config{Dircproxy: boolOpt(cmd, "dircproxy", a.file.Dircproxy)})

			m, skipped, err := repairManifest(dir, stringOpt(cmd, "glob-pattern", a.file.Pattern), rd, a.logger)
			if err != nil {
				return err
			}
			m.Title = stringOpt(cmd, "title", a.file.Title)

			path := filepath.Join(dir, manifest.FileName)
			if err := m.WriteFile(path); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			fmt.Fprintf(cmd.Root().Writer, "Repaired manifest: %d entries (%d skipped)\n", len(m.Entries), skipped)
			return nil
		},
	}
}

// repairManifest lists the days of dir that have a rendered page. Days
// without one, and logs that cannot be read, are counted as skipped.
func repairManifest(dir, pattern string, rd *reader.Reader, logger *log.Logger) (*manifest.Manifest, int, error) {
	files, err := archive.Discover(dir, pattern, logger)
	if err != nil {
		return nil, 0, err
	}

	m := &manifest.Manifest{}
	if target, err := os.Readlink(filepath.Join(dir, archive.LatestName)); err == nil {
		m.Latest = target
	}

	skipped := 0
	for _, f := range files {
		if _, err := os.Stat(filepath.Join(dir, f.Link)); err != nil {
			skipped++
			continue
		}
		events, err := rd.ReadFile(f.Path)
		if err != nil {
			logger.Warn("skipping unreadable log", "file", f.Path, "err", err)
			skipped++
			continue
		}
		entry := manifest.NewEntry(f)
		entry.Stats = core.ComputeStats(events)
		m.Upsert(entry)
	}
	return m, skipped, nil
}
