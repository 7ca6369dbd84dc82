package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"imageutils/internal/pipeline"
	"imageutils/internal/storage"
	"imageutils/internal/worker"
)

func newResizeCmd(a *app, op pipeline.Op, short string) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   string(op) + " INPUT [OUTPUT]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, pipeline.Request{Op: op, Width: width, Height: height}, args)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "W", 0, "target width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "target height in pixels")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}

func newTileCmd(a *app) *cobra.Command {
	var width, height int
	cmd := &cobra.Command{
		Use:   "tile INPUT [OUTPUT]",
		Short: "Repeat the image to fill a WIDTHxHEIGHT canvas",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, pipeline.Request{Op: pipeline.OpTile, Width: width, Height: height}, args)
		},
	}
	cmd.Flags().IntVarP(&width, "width", "W", 0, "canvas width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", 0, "canvas height in pixels")
	cmd.MarkFlagRequired("width")
	cmd.MarkFlagRequired("height")
	return cmd
}

func newBorderCmd(a *app) *cobra.Command {
	var (
		margin                   int
		left, top, right, bottom int
		colorSpec, pattern       string
	)
	cmd := &cobra.Command{
		Use:   "border INPUT [OUTPUT]",
		Short: "Pad the image with a colour or pattern border",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			side := func(name string, v int) int {
				if cmd.Flags().Changed(name) {
					return v
				}
				return margin
			}
			fill, err := worker.ParseFill(colorSpec, pattern, a.cfg.MaxBytes)
			if err != nil {
				return err
			}
			req := pipeline.Request{
				Op:     pipeline.OpBorder,
				Left:   side("left", left),
				Top:    side("top", top),
				Right:  side("right", right),
				Bottom: side("bottom", bottom),
				Fill:   fill,
			}
			return a.run(cmd, req, args)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&margin, "margin", "m", 0, "width of every side not set explicitly")
	f.IntVar(&left, "left", 0, "left margin")
	f.IntVar(&top, "top", 0, "top margin")
	f.IntVar(&right, "right", 0, "right margin")
	f.IntVar(&bottom, "bottom", 0, "bottom margin")
	f.StringVarP(&colorSpec, "color", "c", "", "border colour, #rrggbb[aa] or a name")
	f.StringVarP(&pattern, "pattern", "p", "", "image to repeat across the border")
	return cmd
}

// run fills in the input and output of req from args and processes it.
func (a *app) run(cmd *cobra.Command, req pipeline.Request, args []string) error {
	req.Input = args[0]
	req.Format = a.cfg.OutputFormat
	if len(args) > 1 {
		req.Output = args[1]
	} else {
		req.Output = storage.OutputPath(a.cfg.OutputDir, req.Input, "_"+string(req.Op), pipeline.NormalizeFormat(req.Format))
	}

	p, err := a.processor()
	if err != nil {
		return err
	}
	res, err := p.Process(cmd.Context(), req)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %dx%d %s (%d bytes)\n", res.Output, res.Width, res.Height, res.Format, res.Bytes)
	return nil
}
