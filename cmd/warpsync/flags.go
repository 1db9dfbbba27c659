package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/warpsync/distance"
	"github.com/katalvlaran/warpsync/dtw"
	"github.com/katalvlaran/warpsync/internal/config"
)

// alignFlags are the per-invocation overrides of the [alignment] section.
type alignFlags struct {
	metric       string
	pattern      string
	window       int
	slopePenalty float64
	workers      int
	wavefront    bool
}

func (f *alignFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.metric, "metric", "m", "", "Local cost metric: cosine, euclidean, manhattan")
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", "Step pattern: symmetric1, symmetric2, slope-limited")
	cmd.Flags().IntVarP(&f.window, "window", "w", dtw.DefaultWindow, "Sakoe-Chiba band in frames (-1 disables)")
	cmd.Flags().Float64Var(&f.slopePenalty, "slope-penalty", dtw.DefaultSlopePenalty, "Cost added to every non-diagonal step")
	cmd.Flags().IntVar(&f.workers, "workers", dtw.DefaultWorkers, "Goroutines for parallel stages (0 = all CPUs)")
	cmd.Flags().BoolVar(&f.wavefront, "wavefront", false, "Parallelize accumulation along anti-diagonals")
}

// options merges config values with the flags the user actually set.
// Later options win, so flag overrides are appended after the config ones.
func (f *alignFlags) options(cmd *cobra.Command, cfg *config.Config) ([]dtw.Option, error) {
	opts, err := cfg.AlignOptions()
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("metric") {
		m, err := distance.ParseMetric(f.metric)
		if err != nil {
			return nil, fmt.Errorf("--metric: %w", err)
		}
		opts = append(opts, dtw.WithMetric(m))
	}
	if flags.Changed("pattern") {
		p, err := dtw.ParsePattern(f.pattern)
		if err != nil {
			return nil, fmt.Errorf("--pattern: %w", err)
		}
		opts = append(opts, dtw.WithPattern(p))
	}
	if flags.Changed("window") {
		opts = append(opts, dtw.WithWindow(f.window))
	}
	if flags.Changed("slope-penalty") {
		opts = append(opts, dtw.WithSlopePenalty(f.slopePenalty))
	}
	if flags.Changed("workers") {
		opts = append(opts, dtw.WithWorkers(f.workers))
	}
	if flags.Changed("wavefront") {
		opts = append(opts, dtw.WithWavefront(f.wavefront))
	}
	return opts, nil
}
