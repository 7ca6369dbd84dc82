package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"imageutils/internal/imageops/engine"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and available engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := version
			if v == "" {
				v = "dev"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imageutils %s\n", v)
			fmt.Fprintf(out, "engines: %s (using %s/%s)\n", strings.Join(engine.Names(), ", "), a.cfg.Engine, a.cfg.Filter)
			fmt.Fprintf(out, "filters: %s\n", strings.Join(engine.Filters(), ", "))
			return nil
		},
	}
}
