package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
)

func stylesCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:  "styles",
		Usage: "List the output styles",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
			for _, s := range a.styles {
				kind := "page"
				if !s.html {
					kind = "stream"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.name, kind, s.description)
			}
			return tw.Flush()
		},
	}
}
