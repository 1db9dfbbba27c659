// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/warpsync/feature"
)

// Align synchronizes two feature sequences.
//
// Stage 1 (Validate): options, non-empty inputs, common frame dimension.
// Stage 2 (Cost): build the N×M local-cost matrix (row-parallel).
// Stage 3 (Accumulate): fill D and record the winning step of every cell.
// Stage 4 (Backtrack): follow recorded steps from (N-1,M-1) to (0,0).
//
// The call is synchronous and owns all of its matrices, so concurrent calls
// on independent inputs are safe.
//
// Errors: ErrEmptySequence, ErrDimensionMismatch, ErrNoPath,
// ErrUnreachableOrigin, option errors. All are wrapped with "Align: ".
// Complexity: O(N·M·(D+|S|)) time, O(N·M) memory.
//
// Example:
//
//	res, err := dtw.Align(a, b, dtw.WithMetric(distance.Cosine))
//	if err != nil {
//	  // handle
//	}
//	fmt.Println(res.Distance, res.Path)
func Align(a, b [][]float64, opts ...Option) (*Result, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("Align: %w", err)
	}
	if err = validateSequences(a, b); err != nil {
		return nil, fmt.Errorf("Align: %w", err)
	}
	start := time.Now()
	n, m := len(a), len(b)

	cost, err := buildCost(a, b, o)
	if err != nil {
		return nil, fmt.Errorf("Align: %w", err)
	}
	acc, pred, err := accumulate(cost, o)
	if err != nil {
		return nil, fmt.Errorf("Align: %w", err)
	}
	dist := acc.Row(n - 1)[m-1]
	if math.IsInf(dist, 1) {
		o.logger.Debug("dtw alignment has no path",
			"rows", n, "cols", m, "pattern", o.pattern.String(), "window", o.window)
		return nil, fmt.Errorf("Align: %w", ErrNoPath)
	}
	path, err := backtrackPreds(pred, n, m, o.pattern)
	if err != nil {
		return nil, fmt.Errorf("Align: %w", err)
	}

	o.logger.Debug("dtw alignment complete",
		"rows", n,
		"cols", m,
		"metric", o.metric.String(),
		"pattern", o.pattern.String(),
		"window", o.window,
		"distance", dist,
		"path_len", len(path),
		"elapsed", time.Since(start),
	)

	return &Result{
		Cost:               cost,
		Accumulated:        acc,
		Path:               path,
		Distance:           dist,
		NormalizedDistance: dist / float64(n+m),
	}, nil
}

// AlignSequences is Align over two feature.Sequence values.
func AlignSequences(a, b feature.Sequence, opts ...Option) (*Result, error) {
	return Align(a.Frames, b.Frames, opts...)
}
