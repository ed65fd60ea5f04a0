package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/irclog/archive"
	"github.com/sonnes/irclog/reader"
	"github.com/sonnes/irclog/server"
)

func serveCmd(a *app) *cli.Command {
	flags := []cli.Flag{
		&cli.IntFlag{
			Name:  "port",
			Usage: "Port to listen on",
			Value: 8080,
		},
		&cli.StringFlag{
			Name:    "pattern",
			Aliases: []string{"P"},
			Usage:   "Pattern of log file names",
			Value:   archive.DefaultPattern,
			Sources: cli.EnvVars("IRCLOG_GLOB"),
		},
		&cli.BoolFlag{
			Name:    "multi",
			Aliases: []string{"m"},
			Usage:   "DIR holds one subdirectory of logs per channel",
		},
		&cli.BoolFlag{
			Name:    "searchbox",
			Aliases: []string{"S"},
			Usage:   "Include a search box",
		},
		&cli.IntFlag{
			Name:  "cache-mb",
			Usage: "Size of the rendered page cache in MB",
			Value: server.DefaultCacheSize >> 20,
		},
		&cli.Int64Flag{
			Name:  "max-size",
			Usage: "Largest log in bytes that is rendered on demand",
			Value: server.DefaultMaxSourceBytes,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Deadline for each request",
			Value: server.DefaultRenderTimeout,
		},
		&cli.BoolFlag{
			Name:  "metrics",
			Usage: "Expose Prometheus metrics at " + server.MetricsPath,
		},
	}
	flags = append(flags, readerFlags()...)

	return &cli.Command{
		Name:      "serve",
		Usage:     "Serve logs over HTTP, rendering missing pages on demand",
		ArgsUsage: "[DIR]",
		Description: `DIR defaults to $IRCLOG_LOCATION, or $IRCLOG_CHAN_DIR in multi-channel
mode. The server never writes into DIR.`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := a.serverConfig(cmd)
			if err != nil {
				return err
			}
			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.intOpt(cmd, "port", a.file.Server.Port)),
				Handler:           server.New(cfg).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()

			dir := cfg.Dir
			if cfg.ChannelDir != "" {
				dir = cfg.ChannelDir
			}
			a.logger.Info("serving", "addr", "http://localhost"+srv.Addr, "dir", dir, "multi", cfg.ChannelDir != "")

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

func (a *app) intOpt(cmd *cli.Command, name string, fromFile int) int {
	if cmd.IsSet(name) || fromFile == 0 {
		return cmd.Int(name)
	}
	return fromFile
}

// serverConfig resolves the served directory and limits once, from the
// argument, flags, config file and IRCLOG_* variables.
func (a *app) serverConfig(cmd *cli.Command) (server.Config, error) {
	fs := a.file.Server
	conv, err := a.converter(cmd)
	if err != nil {
		return server.Config{}, err
	}
	multi := cmd.Bool("multi") || (!cmd.IsSet("multi") && fs.ChannelDir != "" && cmd.NArg() == 0)

	cfg := server.Config{
		Pattern:        stringOpt(cmd, "pattern", a.file.Pattern),
		SearchBox:      boolOpt(cmd, "searchbox", a.file.SearchBox),
		Converter:      conv,
		Reader:         reader.Config{Dircproxy: boolOpt(cmd, "dircproxy", a.file.Dircproxy)},
		CacheSize:      a.intOpt(cmd, "cache-mb", fs.CacheMB) << 20,
		MaxSourceBytes: cmd.Int64("max-size"),
		RenderTimeout:  cmd.Duration("timeout"),
		Metrics:        boolOpt(cmd, "metrics", fs.Metrics),
		Logger:         a.logger,
	}
	if !cmd.IsSet("max-size") && fs.MaxSize > 0 {
		cfg.MaxSourceBytes = fs.MaxSize
	}
	if !cmd.IsSet("timeout") && fs.Timeout > 0 {
		cfg.RenderTimeout = fs.Timeout
	}

	dir := cmd.Args().First()
	switch {
	case multi && dir != "":
		cfg.ChannelDir = dir
	case multi:
		cfg.ChannelDir = fs.ChannelDir
	case dir != "":
		cfg.Dir = dir
	default:
		cfg.Dir = fs.Dir
	}
	if cfg.Dir == "" && cfg.ChannelDir == "" {
		return cfg, fmt.Errorf("no log directory: pass DIR or set IRCLOG_LOCATION")
	}
	return cfg, nil
}
