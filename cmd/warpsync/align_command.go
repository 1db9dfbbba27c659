package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/warpsync/dtw"
	"github.com/katalvlaran/warpsync/feature"
)

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var flags alignFlags
	var format string
	var withMatrix bool

	cmd := &cobra.Command{
		Use:   "align <first.json> <second.json>",
		Short: "Compute the optimal warping path between two feature sequences",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = logger.With("run_id", uuid.NewString())

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			a, b, err := loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			start := time.Now()
			res, err := dtw.AlignSequences(a, b, append(opts, dtw.WithLogger(logger))...)
			if err != nil {
				logger.Error("alignment failed", "first", args[0], "second", args[1], "error", err)
				return err
			}
			logger.Info("alignment complete",
				"first", args[0],
				"second", args[1],
				"frames", fmt.Sprintf("%dx%d", a.Len(), b.Len()),
				"distance", res.Distance,
				"path_len", len(res.Path),
				"matrix_memory", humanize.IBytes(matrixBytes(a.Len(), b.Len())),
				"elapsed", time.Since(start),
			)

			report, err := newAlignReport(res, a, b, withMatrix)
			if err != nil {
				return err
			}
			if format == "" {
				format = cfg.Output.Format
			}
			return writeAlignReport(cmd.OutOrStdout(), report, format)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: auto, table, json (default from config)")
	cmd.Flags().BoolVar(&withMatrix, "matrix", false, "Include the accumulated cost matrix in JSON output")
	return cmd
}

func newDistanceCommand(ctx *commandContext) *cobra.Command {
	var flags alignFlags

	cmd := &cobra.Command{
		Use:   "distance <first.json> <second.json>",
		Short: "Compute only the DTW distance, in memory linear in the shorter sequence",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			logger = logger.With("run_id", uuid.NewString())

			opts, err := flags.options(cmd, cfg)
			if err != nil {
				return err
			}
			a, b, err := loadPair(args[0], args[1])
			if err != nil {
				return err
			}

			d, err := dtw.Distance(a.Frames, b.Frames, append(opts, dtw.WithLogger(logger))...)
			if err != nil {
				logger.Error("distance failed", "first", args[0], "second", args[1], "error", err)
				return err
			}
			logger.Info("distance complete", "distance", d, "normalized", d/float64(a.Len()+b.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "%g\n", d)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func loadPair(first, second string) (feature.Sequence, feature.Sequence, error) {
	a, err := feature.Load(first)
	if err != nil {
		return feature.Sequence{}, feature.Sequence{}, err
	}
	b, err := feature.Load(second)
	if err != nil {
		return feature.Sequence{}, feature.Sequence{}, err
	}
	return a, b, nil
}

// matrixBytes estimates the memory Align holds: C and D as float64 plus one
// predecessor byte per cell.
func matrixBytes(n, m int) uint64 {
	cells := uint64(n) * uint64(m)
	return cells*8*2 + cells
}
