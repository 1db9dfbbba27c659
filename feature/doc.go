// SPDX-License-Identifier: MIT

// Package feature defines the feature sequences the alignment engine consumes.
//
// A Sequence is an ordered list of fixed-dimension frames (typically 12-bin
// chroma vectors) plus the duration one frame covers. Sequences come from an
// external feature extractor; this package only validates, normalizes and
// (for the CLI) reads and writes them as JSON:
//
//	{"time_step": 0.0464, "frames": [[0.1, 0.9, ...], ...]}
//
// The alignment engine never mutates a Sequence.
package feature
