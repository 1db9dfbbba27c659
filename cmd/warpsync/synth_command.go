package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/warpsync/feature"
)

func newSynthCommand() *cobra.Command {
	var (
		frames    int
		seed      int64
		dim       int
		noise     float64
		frameStep float64
		stretch   float64
		outPath   string
	)

	cmd := &cobra.Command{
		Use:         "synth",
		Short:       "Generate a deterministic synthetic feature sequence",
		Long:        "Generate a chroma-like feature sequence whose dominant bin follows a chirp.\nUse --stretch to produce a tempo-changed copy of the same performance.",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := feature.Synth(frames, seed,
				feature.WithDim(dim),
				feature.WithNoise(noise),
				feature.WithFrameStep(frameStep),
			)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("stretch") {
				if s, err = feature.Stretch(s, stretch); err != nil {
					return err
				}
			}

			target := strings.TrimSpace(outPath)
			if target == "" {
				return feature.Write(cmd.OutOrStdout(), s)
			}
			return writeSequenceFile(target, s)
		},
	}

	cmd.Flags().IntVarP(&frames, "frames", "n", 200, "Number of frames")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Noise seed")
	cmd.Flags().IntVar(&dim, "dim", 12, "Frame dimension")
	cmd.Flags().Float64Var(&noise, "noise", 0, "Noise level added to every bin")
	cmd.Flags().Float64Var(&frameStep, "frame-step", 0.0464, "Seconds per frame (hop / sample rate)")
	cmd.Flags().Float64Var(&stretch, "stretch", 1, "Tempo factor; above 1 repeats frames, below 1 drops them")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

// writeSequenceFile writes s to path and reports close errors, which is
// where a failed flush surfaces.
func writeSequenceFile(path string, s feature.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := feature.Write(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}
