// SPDX-License-Identifier: MIT

package feature

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoFrames indicates a sequence without any frame.
	ErrNoFrames = errors.New("feature: sequence has no frames")

	// ErrRaggedFrames indicates frames of differing (or zero) dimension.
	ErrRaggedFrames = errors.New("feature: frames differ in dimension")

	// ErrNonFinite indicates a NaN or ±Inf entry.
	ErrNonFinite = errors.New("feature: NaN or Inf in frame")

	// ErrInvalidTimeScale indicates a non-positive or non-finite sample rate, hop or time step.
	ErrInvalidTimeScale = errors.New("feature: time scale must be finite and > 0")
)

// Sequence is an ordered list of feature frames sharing one dimension.
type Sequence struct {
	// Frames holds N vectors of dimension D, in time order.
	Frames [][]float64 `json:"frames"`

	// TimeStep is the duration one frame covers, in seconds (hop / sample rate).
	// Zero means unknown; time mapping then fails with ErrInvalidTimeScale.
	TimeStep float64 `json:"time_step"`
}

// Len returns the number of frames.
func (s Sequence) Len() int { return len(s.Frames) }

// Dim returns the frame dimension, or 0 for an empty sequence.
func (s Sequence) Dim() int {
	if len(s.Frames) == 0 {
		return 0
	}

	return len(s.Frames[0])
}

// Duration returns Len()*TimeStep.
func (s Sequence) Duration() float64 { return float64(len(s.Frames)) * s.TimeStep }

// Validate checks the structural invariants: at least one frame, a common
// positive dimension and finite entries. TimeStep is checked only when set.
// Complexity: O(N·D).
func (s Sequence) Validate() error {
	if len(s.Frames) == 0 {
		return ErrNoFrames
	}
	d := len(s.Frames[0])
	if d == 0 {
		return fmt.Errorf("frame 0: %w", ErrRaggedFrames)
	}
	for i, f := range s.Frames {
		if len(f) != d {
			return fmt.Errorf("frame %d has dimension %d, want %d: %w", i, len(f), d, ErrRaggedFrames)
		}
		for k, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("frame %d[%d]: %w", i, k, ErrNonFinite)
			}
		}
	}
	if s.TimeStep != 0 && !validScale(s.TimeStep) {
		return fmt.Errorf("time_step %v: %w", s.TimeStep, ErrInvalidTimeScale)
	}

	return nil
}

// Normalize returns a copy whose frames have unit L2 norm.
// Zero frames stay zero; the cosine metric treats them as maximally distant.
// Complexity: O(N·D).
func (s Sequence) Normalize() Sequence {
	out := Sequence{Frames: make([][]float64, len(s.Frames)), TimeStep: s.TimeStep}
	for i, f := range s.Frames {
		g := make([]float64, len(f))
		var n2 float64
		for _, v := range f {
			n2 += v * v
		}
		if n2 > 0 {
			inv := 1 / math.Sqrt(n2)
			for k, v := range f {
				g[k] = v * inv
			}
		}
		out.Frames[i] = g
	}

	return out
}

// TimeStep derives the per-frame duration hop/sampleRate in seconds.
func TimeStep(sampleRate float64, hop int) (float64, error) {
	if !validScale(sampleRate) || hop <= 0 {
		return 0, fmt.Errorf("sample rate %v, hop %d: %w", sampleRate, hop, ErrInvalidTimeScale)
	}

	return float64(hop) / sampleRate, nil
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
