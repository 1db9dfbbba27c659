// SPDX-License-Identifier: MIT

// Package matrix provides the dense storage used by the alignment engine.
//
// Dense is a row-major float64 matrix backed by one flat slice. The dtw
// package stores both the local-cost matrix C and the accumulated-cost
// matrix D in it, so shape, indexing and printing behave the same for both.
//
// Key properties:
//   - single allocation per matrix, cache-friendly row sweeps;
//   - bounds-checked At/Set returning ErrIndexOutOfBounds instead of panicking;
//   - Row(i) exposes a live view for tight kernels that already validated shape;
//   - deterministic String output for debugging and golden tests.
//
// Usage:
//
//	m, err := matrix.NewDense(3, 2)
//	if err != nil {
//	  // ErrInvalidDimensions
//	}
//	_ = m.Set(2, 1, 0.5)
//	v, _ := m.At(2, 1)
//
// Complexity: construction, Clone and Transpose are O(r*c); At/Set are O(1).
package matrix
