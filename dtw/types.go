// SPDX-License-Identifier: MIT

package dtw

import "github.com/katalvlaran/warpsync/matrix"

// Coord is one warping-path element: frame I of the first sequence is
// aligned with frame J of the second.
type Coord struct {
	I, J int
}

// Path is a warping path in start-to-end order: it begins at (0,0), ends at
// (N-1,M-1), and consecutive elements differ by one step of the pattern.
type Path []Coord

// Transpose returns the path with every (i,j) swapped to (j,i).
// Complexity: O(len(p)).
func (p Path) Transpose() Path {
	out := make(Path, len(p))
	for k, c := range p {
		out[k] = Coord{I: c.J, J: c.I}
	}

	return out
}

// TimePair holds the real time offsets, in seconds, of an aligned frame pair.
type TimePair struct {
	T1, T2 float64
}

// Result is the outcome of Align.
type Result struct {
	// Cost is the N×M local-cost matrix C.
	Cost *matrix.Dense

	// Accumulated is the N×M accumulated-cost matrix D. Cells no admissible
	// path reaches hold +Inf.
	Accumulated *matrix.Dense

	// Path is the optimal warping path from (0,0) to (N-1,M-1).
	Path Path

	// Distance is D[N-1][M-1].
	Distance float64

	// NormalizedDistance is Distance/(N+M), comparable across lengths.
	NormalizedDistance float64
}
