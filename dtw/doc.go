// Package dtw aligns two feature sequences with Dynamic Time Warping (DTW).
//
// What is DTW?
//
//	Two performances of the same passage play the same material at
//	different tempi. DTW finds the monotonic mapping between their frames
//	(the warping path) that minimizes the total local dissimilarity, which
//	turns into a time map from one recording to the other.
//
// Pipeline:
//
//	frames ──► CostMatrix ──► Accumulate ──► Backtrack ──► MapTimes
//	           C[i][j]        D[i][j]        Path           (t1, t2)
//
// Align runs the first three stages in one call and returns C, D and the
// path; MapTimes is an optional post-processing step.
//
// Key features:
//   - pluggable local metric (distance.Cosine default, Euclidean, Manhattan);
//   - pluggable step pattern: Symmetric1 (default), Symmetric2, SlopeLimited,
//     or any custom set of (DI, DJ, Weight) steps;
//   - deterministic tie-break: steps are tried in pattern order, so the
//     predefined patterns prefer diagonal, then vertical, then horizontal;
//   - optional Sakoe-Chiba window (|i-j| <= w) and slope penalty;
//   - row-parallel cost matrix and optional anti-diagonal (wavefront)
//     accumulation, both bit-identical to the sequential computation;
//   - Distance: distance only, O(min(N,M)) memory.
//
// Usage:
//
//	res, err := dtw.Align(a, b,
//	  dtw.WithMetric(distance.Cosine),
//	  dtw.WithPattern(dtw.Symmetric1),
//	)
//	if err != nil {
//	  // ErrEmptySequence, ErrDimensionMismatch, ErrNoPath, ...
//	}
//	times, err := dtw.MapTimes(res.Path, hopA/srA, hopB/srB)
//
// Complexity:
//
//   - Time:   O(N·M·(D+|S|)) for N×M frames of dimension D and |S| steps
//   - Memory: O(N·M) (Align) or O(min(N,M)) (Distance)
//
// Concurrency: every call owns its matrices; the package holds no mutable
// state, so independent alignments may run concurrently.
package dtw
