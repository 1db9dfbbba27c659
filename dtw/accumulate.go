// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/warpsync/matrix"
)

// noStep marks a cell without a predecessor: the origin, or a cell no
// admissible path reaches.
const noStep int8 = -1

// Accumulate computes the accumulated-cost matrix D from a local-cost matrix C.
//
// Recurrence, for the configured step pattern S and slope penalty p:
//
//	D[0][0] = C[0][0]
//	D[i][j] = min over s in S with i-s.DI >= 0, j-s.DJ >= 0 of
//	          D[i-s.DI][j-s.DJ] + s.Weight*C[i][j] + p*[s.DI != s.DJ]
//
// With the default Symmetric1 pattern and no penalty this is
// D[i][j] = C[i][j] + min(D[i-1][j-1], D[i-1][j], D[i][j-1]) with the usual
// first-row and first-column sums. Cells outside the window, or with no
// finite predecessor, hold +Inf.
//
// Local costs must be non-negative and finite; NaN or negative entries are
// not checked and make the result undefined.
//
// Errors: ErrEmptySequence for a nil or empty matrix, option errors.
// Complexity: O(N·M·|S|) time, O(N·M) memory.
func Accumulate(cost *matrix.Dense, opts ...Option) (*matrix.Dense, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("Accumulate: %w", err)
	}
	if matrix.ValidateNotNil(cost) != nil || cost.Rows() == 0 || cost.Cols() == 0 {
		return nil, fmt.Errorf("Accumulate: %w", ErrEmptySequence)
	}
	acc, _, err := accumulate(cost, o)
	if err != nil {
		return nil, fmt.Errorf("Accumulate: %w", err)
	}

	return acc, nil
}

// kernel holds the row views shared by the sequential and wavefront sweeps.
type kernel struct {
	o     *options
	steps []Step
	m     int
	c     [][]float64 // rows of C
	d     [][]float64 // rows of D
	pred  []int8      // chosen step index per cell, row-major
}

// accumulate fills D and the predecessor matrix for a validated C.
func accumulate(cost *matrix.Dense, o *options) (*matrix.Dense, []int8, error) {
	n, m := cost.Rows(), cost.Cols()
	acc, err := matrix.NewFilled(n, m, math.Inf(1))
	if err != nil {
		return nil, nil, err
	}

	k := &kernel{
		o:     o,
		steps: o.pattern.steps,
		m:     m,
		c:     make([][]float64, n),
		d:     make([][]float64, n),
		pred:  make([]int8, n*m),
	}
	for i := 0; i < n; i++ {
		k.c[i] = cost.Row(i)
		k.d[i] = acc.Row(i)
	}
	for idx := range k.pred {
		k.pred[idx] = noStep
	}

	if o.wavefront && o.workers > 1 {
		err = k.sweepWavefront(n, m)
	} else {
		k.sweepRows(n, m)
	}
	if err != nil {
		return nil, nil, err
	}

	return acc, k.pred, nil
}

// cell evaluates D[i][j] once every predecessor is final.
// Ties keep the earliest step in pattern order (strict <).
func (k *kernel) cell(i, j int) {
	if !k.o.inWindow(i, j) {
		return
	}
	c := k.c[i][j]
	if i == 0 && j == 0 {
		k.d[0][0] = c
		return
	}

	best, bestStep := math.Inf(1), noStep
	for s, st := range k.steps {
		pi, pj := i-st.DI, j-st.DJ
		if pi < 0 || pj < 0 {
			continue
		}
		v := k.d[pi][pj] + st.Weight*c + k.o.penalty(st)
		if v < best {
			best, bestStep = v, int8(s)
		}
	}
	k.d[i][j] = best
	k.pred[i*k.m+j] = bestStep
}

// sweepRows is the row-major sequential sweep. Every step has DI, DJ >= 0,
// so predecessors are always visited first.
func (k *kernel) sweepRows(n, m int) {
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			k.cell(i, j)
		}
	}
}

// sweepWavefront processes anti-diagonals i+j = d in increasing order. A
// step moves from diagonal d-DI-DJ to d, so all cells of one diagonal only
// read finished diagonals and can be computed concurrently; each goroutine
// owns a disjoint run of cells.
func (k *kernel) sweepWavefront(n, m int) error {
	workers := k.o.workers
	for d := 0; d <= n+m-2; d++ {
		lo, hi := max(0, d-(m-1)), min(d, n-1)
		cnt := hi - lo + 1
		if cnt < 2*wavefrontMinChunk {
			for i := lo; i <= hi; i++ {
				k.cell(i, d-i)
			}
			continue
		}

		chunk := max(wavefrontMinChunk, (cnt+workers-1)/workers)
		var g errgroup.Group
		g.SetLimit(workers)
		for s := lo; s <= hi; s += chunk {
			e := min(s+chunk-1, hi)
			g.Go(func() error {
				for i := s; i <= e; i++ {
					k.cell(i, d-i)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}
