// SPDX-License-Identifier: MIT
// Package dtw: sentinel error set.
// Messages are prefixed with "dtw: ..."; entry points wrap them with the
// operation name (fmt.Errorf("Align: %w", ErrX)) and callers match with errors.Is.

package dtw

import "errors"

var (
	// ErrEmptySequence indicates one or both inputs are empty.
	ErrEmptySequence = errors.New("dtw: input sequences must be non-empty")

	// ErrDimensionMismatch indicates frames of different (or zero) dimension,
	// within one sequence or across the two.
	ErrDimensionMismatch = errors.New("dtw: feature dimensions differ")

	// ErrInvalidTimeScale indicates a non-positive or non-finite time-per-step.
	ErrInvalidTimeScale = errors.New("dtw: time scale must be finite and > 0")

	// ErrUnreachableOrigin indicates backtracking could not walk back to (0,0).
	// Given matrices produced by Accumulate this never happens; treat it as a bug.
	ErrUnreachableOrigin = errors.New("dtw: backtracking cannot reach the origin")

	// ErrNoPath indicates the terminal cell is unreachable under the window and
	// step pattern (its accumulated cost is +Inf).
	ErrNoPath = errors.New("dtw: no admissible warping path")

	// ErrBadWindow indicates a window below -1.
	ErrBadWindow = errors.New("dtw: window must be >= -1")

	// ErrBadWorkers indicates a negative worker count.
	ErrBadWorkers = errors.New("dtw: workers must be >= 0")

	// ErrBadPenalty indicates a negative or non-finite slope penalty.
	ErrBadPenalty = errors.New("dtw: slope penalty must be finite and >= 0")

	// ErrInvalidStepPattern indicates a malformed custom step pattern.
	ErrInvalidStepPattern = errors.New("dtw: invalid step pattern")

	// ErrUnknownPattern indicates a pattern name or kind outside the predefined set.
	ErrUnknownPattern = errors.New("dtw: unknown step pattern")
)
