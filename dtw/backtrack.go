// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"

	"github.com/katalvlaran/warpsync/matrix"
)

// Backtrack recovers the optimal warping path from an accumulated-cost
// matrix D and the local-cost matrix C it was built from, using the same
// options that were passed to Accumulate.
//
// Starting at (N-1,M-1) it repeatedly moves to the predecessor with the
// minimal accumulated cost, preferring steps in pattern order on exact ties
// (diagonal, then vertical, then horizontal for the predefined patterns),
// stops at (0,0) and returns the path in start-to-end order.
//
// Errors:
//   - ErrEmptySequence for a matrix with no rows or columns;
//   - ErrNoPath if D[N-1][M-1] is +Inf;
//   - ErrUnreachableOrigin if D does not satisfy the recurrence for C, so
//     the walk cannot get back to (0,0);
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch for bad inputs.
//
// Complexity: O((N+M)·|S|) time, O(N+M) memory.
func Backtrack(acc, cost *matrix.Dense, opts ...Option) (Path, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("Backtrack: %w", err)
	}
	if err = matrix.ValidateSameShape(acc, cost); err != nil {
		return nil, fmt.Errorf("Backtrack: %w", err)
	}
	n, m := acc.Rows(), acc.Cols()
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("Backtrack: %w", ErrEmptySequence)
	}
	if math.IsInf(acc.Row(n - 1)[m-1], 1) {
		return nil, fmt.Errorf("Backtrack: %w", ErrNoPath)
	}

	steps := o.pattern.steps
	path := make(Path, 0, n+m-1)
	i, j := n-1, m-1
	path = append(path, Coord{I: i, J: j})
	for i != 0 || j != 0 {
		c := cost.Row(i)[j]
		best, bestStep := math.Inf(1), noStep
		for s, st := range steps {
			pi, pj := i-st.DI, j-st.DJ
			if pi < 0 || pj < 0 {
				continue
			}
			v := acc.Row(pi)[pj] + st.Weight*c + o.penalty(st)
			if v < best {
				best, bestStep = v, int8(s)
			}
		}
		if bestStep == noStep || best != acc.Row(i)[j] {
			return nil, fmt.Errorf("Backtrack: at (%d,%d): %w", i, j, ErrUnreachableOrigin)
		}
		i, j = i-steps[bestStep].DI, j-steps[bestStep].DJ
		path = append(path, Coord{I: i, J: j})
	}
	reversePath(path)

	return path, nil
}

// backtrackPreds walks the predecessor matrix recorded by accumulate.
// Every step strictly decreases i+j, so the loop runs at most N+M-2 times.
func backtrackPreds(pred []int8, n, m int, p StepPattern) (Path, error) {
	path := make(Path, 0, n+m-1)
	i, j := n-1, m-1
	path = append(path, Coord{I: i, J: j})
	for i != 0 || j != 0 {
		s := pred[i*m+j]
		if s == noStep || int(s) >= len(p.steps) {
			return nil, fmt.Errorf("at (%d,%d): %w", i, j, ErrUnreachableOrigin)
		}
		i, j = i-p.steps[s].DI, j-p.steps[s].DJ
		if i < 0 || j < 0 {
			return nil, fmt.Errorf("step %d leaves the matrix: %w", s, ErrUnreachableOrigin)
		}
		path = append(path, Coord{I: i, J: j})
	}
	reversePath(path)

	return path, nil
}

// reversePath reverses p in place.
func reversePath(p Path) {
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}
