package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env is optional; IRCLOG_* variables may come from the environment.
	_ = godotenv.Load()

	if err := newRoot(newApp()).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newRoot(a *app) *cli.Command {
	return &cli.Command{
		Name:  "irclog",
		Usage: "Colourise IRC logs and publish them as a browsable archive",
		Description: `Converts plain-text IRC logs to HTML with a stable colour per nickname,
keeps a directory of daily logs rendered as a linked archive, and serves
logs over HTTP, rendering missing pages on demand.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file (YAML, TOML or JSON)",
				Sources: cli.EnvVars("IRCLOG_CONFIG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, a.loadConfig(cmd.String("config"))
		},
		Commands: []*cli.Command{
			convertCmd(a),
			buildCmd(a),
			serveCmd(a),
			manifestCmd(a),
			stylesCmd(a),
		},
	}
}
