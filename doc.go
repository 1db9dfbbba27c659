// Package warpsync aligns two performances of the same music by dynamic
// time warping over chroma feature sequences.
//
// What is warpsync?
//
//	An in-memory alignment engine plus a small CLI:
//		• Local costs: cosine, Euclidean, Manhattan frame distances
//		• Cost matrix: row-parallel N×M evaluation
//		• Accumulation: generic step patterns, Sakoe-Chiba band, slope penalty
//		• Backtracking: optimal warping path from (0,0) to (N-1,M-1)
//		• Time mapping: frame pairs to seconds in each recording
//		• Distance-only mode in memory linear in the shorter sequence
//
// Packages:
//
//	distance/     frame-to-frame metrics
//	dtw/          cost matrix, accumulation, backtracking, time mapping
//	feature/      feature sequences, JSON codec, synthetic fixtures
//	matrix/       dense row-major float64 matrix
//	cmd/warpsync/ command-line front end (align, distance, synth, config)
//
// Quick example:
//
//	res, err := dtw.Align(chromaA, chromaB, dtw.WithWindow(200))
//	if err != nil {
//		return err
//	}
//	pairs, _ := dtw.MapTimes(res.Path, hopA/srA, hopB/srB)
//
// Complexity: O(N·M) time for every full alignment; O(N·M) memory for Align,
// O(min(N,M)) for Distance.
package warpsync
