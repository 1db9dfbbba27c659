// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/warpsync/matrix"
)

// CostMatrix builds the N×M local-cost matrix C[i][j] = metric(a[i], b[j]).
//
// Stage 1 (Validate): both sequences non-empty, every frame of both shares
// the dimension of a[0]. Nothing is allocated before validation passes.
// Stage 2 (Execute): rows are evaluated independently, spread over the
// configured workers; each goroutine owns whole rows so no locking is needed.
//
// Errors: ErrEmptySequence, ErrDimensionMismatch, option errors.
// Complexity: O(N·M·D) time, O(N·M) memory.
func CostMatrix(a, b [][]float64, opts ...Option) (*matrix.Dense, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("CostMatrix: %w", err)
	}
	if err = validateSequences(a, b); err != nil {
		return nil, fmt.Errorf("CostMatrix: %w", err)
	}

	return buildCost(a, b, o)
}

// validateSequences enforces the non-empty and common-dimension invariants.
// Complexity: O(N+M).
func validateSequences(a, b [][]float64) error {
	if len(a) == 0 || len(b) == 0 {
		return ErrEmptySequence
	}
	d := len(a[0])
	if d == 0 {
		return fmt.Errorf("%w: zero-dimension frame", ErrDimensionMismatch)
	}
	for i, f := range a {
		if len(f) != d {
			return fmt.Errorf("%w: first sequence frame %d has dimension %d, want %d", ErrDimensionMismatch, i, len(f), d)
		}
	}
	for j, f := range b {
		if len(f) != d {
			return fmt.Errorf("%w: second sequence frame %d has dimension %d, want %d", ErrDimensionMismatch, j, len(f), d)
		}
	}

	return nil
}

// buildCost fills C for already validated inputs.
func buildCost(a, b [][]float64, o *options) (*matrix.Dense, error) {
	c, err := matrix.NewDense(len(a), len(b))
	if err != nil {
		return nil, err
	}
	fillRow := func(i int) {
		row := c.Row(i)
		for j, v := range b {
			row[j] = o.cost(a[i], v)
		}
	}

	if o.workers <= 1 || len(a) < 2 || len(a)*len(b) < parallelMinCells {
		for i := range a {
			fillRow(i)
		}

		return c, nil
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := range a {
		g.Go(func() error {
			fillRow(i)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return c, nil
}
