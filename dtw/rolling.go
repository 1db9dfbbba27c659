// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"
)

// Distance returns the DTW distance D[N-1][M-1] without materializing any
// matrix: local costs are evaluated on demand and only the last maxDI+1
// rows of D are kept in a ring. The shorter sequence is laid along the
// columns (transposing the step pattern), so memory is O(min(N,M)).
//
// The result is bit-identical to Align(a, b, opts...).Distance.
//
// Errors: ErrEmptySequence, ErrDimensionMismatch, ErrNoPath, option errors.
// Complexity: O(N·M·(D+|S|)) time, O(min(N,M)) memory.
func Distance(a, b [][]float64, opts ...Option) (float64, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}
	if err = validateSequences(a, b); err != nil {
		return 0, fmt.Errorf("Distance: %w", err)
	}

	pattern := o.pattern
	cost := o.cost
	if len(b) > len(a) {
		a, b = b, a
		pattern = pattern.transpose()
		f := o.cost
		cost = func(x, y []float64) float64 { return f(y, x) }
	}
	n, m := len(a), len(b)

	ring := make([][]float64, pattern.maxDI+1)
	for r := range ring {
		ring[r] = make([]float64, m)
	}
	inf := math.Inf(1)

	for i := 0; i < n; i++ {
		cur := ring[i%len(ring)]
		for j := 0; j < m; j++ {
			cur[j] = inf
			if !o.inWindow(i, j) {
				continue
			}
			c := cost(a[i], b[j])
			if i == 0 && j == 0 {
				cur[0] = c
				continue
			}
			best := inf
			for _, st := range pattern.steps {
				pi, pj := i-st.DI, j-st.DJ
				if pi < 0 || pj < 0 {
					continue
				}
				if v := ring[pi%len(ring)][pj] + st.Weight*c + o.penalty(st); v < best {
					best = v
				}
			}
			cur[j] = best
		}
	}

	dist := ring[(n-1)%len(ring)][m-1]
	if math.IsInf(dist, 1) {
		return 0, fmt.Errorf("Distance: %w", ErrNoPath)
	}
	o.logger.Debug("dtw distance complete", "rows", n, "cols", m, "distance", dist)

	return dist, nil
}
