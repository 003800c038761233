package cli

import (
	"fmt"
	"os"

	"github.com/jjanczur/SPDB/chameleon"
	"github.com/jjanczur/SPDB/geo"
	"github.com/jjanczur/SPDB/render"
	"github.com/jjanczur/SPDB/report"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	var configPath string
	flagOpts := DefaultOptions()

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Cluster the points of a CSV file",
		Long: `Cluster the points of a CSV file and print accuracy and purity per cluster.

The file must start with a header line; each record holds an id, a label, the
latitude and the longitude. A PNG with one color per cluster is written next
to the input unless --no-png is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := DefaultOptions()
			if configPath != "" {
				var err error
				if opts, err = LoadOptions(configPath); err != nil {
					return err
				}
			}
			overrideChanged(cmd, &opts, flagOpts)
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			logger, err := newLogger(opts.LogFormat, opts.Verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if err := run(cmd, opts, logger); err != nil {
				logger.Error("run failed", zap.Error(err))
				return loggedError{err}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file with run options; flags take precedence")
	f.IntVar(&flagOpts.K, "k", flagOpts.K, "nearest neighbors kept per point")
	f.IntVar(&flagOpts.InitClusters, "init", flagOpts.InitClusters, "cluster count reached by splitting")
	f.IntVar(&flagOpts.ResultClusters, "result", flagOpts.ResultClusters, "cluster count after merging")
	f.IntVar(&flagOpts.Workers, "workers", flagOpts.Workers, "goroutines for graph and merge scans (0 = all CPUs)")
	f.StringVar(&flagOpts.Singletons, "singletons", flagOpts.Singletons, "one-point clusters in the merge phase: reject or link")
	f.IntVar(&flagOpts.MinLabelOccurrence, "min-label", flagOpts.MinLabelOccurrence, "members a label needs to count towards purity")
	f.IntVar(&flagOpts.H3Resolution, "h3-res", flagOpts.H3Resolution, "H3 resolution of reported cluster centroids")
	f.StringVar(&flagOpts.PNG, "png", flagOpts.PNG, "output image (default: input with .png extension)")
	f.BoolVar(&flagOpts.NoPNG, "no-png", flagOpts.NoPNG, "do not write an image")
	f.StringVar(&flagOpts.LogFormat, "log-format", flagOpts.LogFormat, "log encoding: console or json")
	f.BoolVarP(&flagOpts.Verbose, "verbose", "v", flagOpts.Verbose, "log every split and merge")

	return cmd
}

// overrideChanged copies the flags the user set explicitly from src to dst.
func overrideChanged(cmd *cobra.Command, dst *Options, src Options) {
	changed := cmd.Flags().Changed
	if changed("k") {
		dst.K = src.K
	}
	if changed("init") {
		dst.InitClusters = src.InitClusters
	}
	if changed("result") {
		dst.ResultClusters = src.ResultClusters
	}
	if changed("workers") {
		dst.Workers = src.Workers
	}
	if changed("singletons") {
		dst.Singletons = src.Singletons
	}
	if changed("min-label") {
		dst.MinLabelOccurrence = src.MinLabelOccurrence
	}
	if changed("h3-res") {
		dst.H3Resolution = src.H3Resolution
	}
	if changed("png") {
		dst.PNG = src.PNG
	}
	if changed("no-png") {
		dst.NoPNG = src.NoPNG
	}
	if changed("log-format") {
		dst.LogFormat = src.LogFormat
	}
	if changed("verbose") {
		dst.Verbose = src.Verbose
	}
}

func run(cmd *cobra.Command, opts Options, logger *zap.Logger) error {
	points, err := geo.LoadFile(opts.Input)
	if err != nil {
		return err
	}
	logger.Info("loaded points", zap.String("file", opts.Input), zap.Int("points", len(points)))

	bar := newProgress(os.Stderr, isatty.IsTerminal(os.Stderr.Fd()), opts.InitClusters, opts.ResultClusters)
	clusters, err := chameleon.Run(points, opts.engineConfig(logger, bar.step))
	bar.finish()
	if err != nil {
		return err
	}

	summary, err := report.Calculate(clusters, opts.reportOptions())
	if err != nil {
		return err
	}
	if err := summary.Render(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if path := opts.pngPath(); path != "" {
		if err := render.SavePNG(path, clusters, opts.renderOptions()); err != nil {
			return err
		}
		logger.Info("wrote image", zap.String("file", path))
	}
	return nil
}
