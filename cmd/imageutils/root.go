package main

import (
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"imageutils/internal/config"
	"imageutils/internal/imageops"
	"imageutils/internal/imageops/engine"
	"imageutils/internal/pipeline"
)

type app struct {
	configPath string
	engine     string
	filter     string
	format     string
	outputDir  string
	logLevel   string

	cfg    *config.Config
	logger hclog.Logger
	// logOutput is where the logger writes; tests replace it.
	logOutput io.Writer
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{logOutput: os.Stderr}

	root := &cobra.Command{
		Use:           "imageutils",
		Short:         "Fit, scale, tile and border raster images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "TOML config file")
	f.StringVar(&a.engine, "engine", "", "resampling engine: imaging, xdraw, gift, nfnt or bild")
	f.StringVar(&a.filter, "filter", "", "resampling filter: lanczos, catmullrom, linear, box or nearest")
	f.StringVar(&a.format, "format", "", "output format, overrides the output extension")
	f.StringVar(&a.outputDir, "output-dir", "", "directory for derived output names")
	f.StringVar(&a.logLevel, "log-level", "", "trace, debug, info, warn, error or off")

	root.AddCommand(
		newResizeCmd(a, pipeline.OpFit, "Resize to exactly WIDTHxHEIGHT, ignoring aspect ratio"),
		newResizeCmd(a, pipeline.OpScale, "Resize to fit inside WIDTHxHEIGHT, keeping aspect ratio"),
		newTileCmd(a),
		newBorderCmd(a),
		newBatchCmd(a),
		newVersionCmd(a),
	)
	return root, a
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	var cfg *config.Config
	if a.configPath != "" {
		c, err := config.LoadFile(a.configPath)
		if err != nil {
			return err
		}
		cfg = c
	} else {
		cfg = config.Load()
	}

	flags := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if flags.Changed(name) {
			*dst = v
		}
	}
	override("engine", &cfg.Engine, a.engine)
	override("filter", &cfg.Filter, a.filter)
	override("format", &cfg.OutputFormat, a.format)
	override("output-dir", &cfg.OutputDir, a.outputDir)
	override("log-level", &cfg.LogLevel, a.logLevel)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "imageutils",
		Output: a.logOutput,
		Level:  hclog.LevelFromString(cfg.LogLevel),
	}).With("appVersion", version)
	return nil
}

func (a *app) log() hclog.Logger {
	if a.logger == nil {
		return hclog.New(&hclog.LoggerOptions{Name: "imageutils", Output: a.logOutput})
	}
	return a.logger
}

func (a *app) processor() (*pipeline.Processor, error) {
	r, err := engine.New(a.cfg.Engine, a.cfg.Filter)
	if err != nil {
		return nil, err
	}

	enc := pipeline.NewEncoder(a.logger.Named("encoder"))
	enc.WebPQuality = a.cfg.WebPQuality
	enc.AVIFQuality = a.cfg.AVIFQuality
	enc.AVIFSpeed = a.cfg.AVIFSpeed
	enc.JPEGQuality = a.cfg.JPEGQuality

	return pipeline.NewProcessor(imageops.New(r), enc, a.cfg.MaxBytes, a.logger.Named("pipeline")), nil
}
