// SPDX-License-Identifier: MIT

package feature

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrBadSynthParam indicates a meaningless Synth or Stretch parameter.
var ErrBadSynthParam = errors.New("feature: invalid synthesis parameter")

const (
	defSynthDim   = 12   // chroma bins
	defSynthF0    = 0.02 // start sweep rate, rotations per frame
	defSynthF1    = 0.25 // end sweep rate, rotations per frame
	defSynthWidth = 1.0  // bump standard deviation, in bins
	defSynthSigma = 0.0  // noise disabled
)

const tau = 2 * math.Pi

type synthConfig struct {
	dim      int
	f0, f1   float64
	width    float64
	sigma    float64
	timeStep float64
	rng      *rand.Rand
}

// SynthOption customizes Synth.
type SynthOption func(*synthConfig)

// WithDim sets the frame dimension (default 12).
func WithDim(d int) SynthOption {
	return func(c *synthConfig) { c.dim = d }
}

// WithSweep sets the start and end rotation rates of the dominant bin,
// in rotations per frame.
func WithSweep(f0, f1 float64) SynthOption {
	return func(c *synthConfig) { c.f0, c.f1 = f0, f1 }
}

// WithNoise adds |N(0, sigma²)| to every bin.
func WithNoise(sigma float64) SynthOption {
	return func(c *synthConfig) { c.sigma = sigma }
}

// WithFrameStep sets the TimeStep of the generated sequence.
func WithFrameStep(s float64) SynthOption {
	return func(c *synthConfig) { c.timeStep = s }
}

// WithRand shares an RNG stream across calls; it overrides the seed.
func WithRand(r *rand.Rand) SynthOption {
	return func(c *synthConfig) { c.rng = r }
}

// Synth returns a deterministic chroma-like sequence of n frames.
//
// The dominant bin follows a linear chirp: the sweep rate goes from f0 to
// f1 across the sequence and the phase is integrated frame by frame. Each
// frame is a circular Gaussian bump around the dominant position, so
// consecutive frames are similar and the sequence never repeats exactly.
// Identical (n, seed, options) always yield identical frames.
//
// Errors: ErrNoFrames for n < 1, ErrBadSynthParam for dim < 1, a
// non-positive or non-finite sweep rate, a negative noise level or an
// invalid frame step.
// Complexity: O(n·dim).
func Synth(n int, seed int64, opts ...SynthOption) (Sequence, error) {
	if n < 1 {
		return Sequence{}, ErrNoFrames
	}
	cfg := synthConfig{
		dim:   defSynthDim,
		f0:    defSynthF0,
		f1:    defSynthF1,
		width: defSynthWidth,
		sigma: defSynthSigma,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return Sequence{}, err
	}
	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	frames := make([][]float64, n)
	dim := float64(cfg.dim)
	theta := 0.0
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		theta += tau * (cfg.f0 + (cfg.f1-cfg.f0)*t)
		center := math.Mod(theta/tau, 1) * dim

		f := make([]float64, cfg.dim)
		for k := range f {
			d := math.Abs(float64(k) - center)
			d = math.Min(d, dim-d)
			f[k] = math.Exp(-d * d / (2 * cfg.width * cfg.width))
			if cfg.sigma > 0 {
				f[k] += cfg.sigma * math.Abs(rng.NormFloat64())
			}
		}
		frames[i] = f
	}

	return Sequence{Frames: frames, TimeStep: cfg.timeStep}, nil
}

func (c synthConfig) validate() error {
	switch {
	case c.dim < 1:
		return fmt.Errorf("%w: dim %d", ErrBadSynthParam, c.dim)
	case !validScale(c.f0) || !validScale(c.f1):
		return fmt.Errorf("%w: sweep (%v, %v)", ErrBadSynthParam, c.f0, c.f1)
	case c.sigma < 0 || math.IsNaN(c.sigma) || math.IsInf(c.sigma, 0):
		return fmt.Errorf("%w: noise %v", ErrBadSynthParam, c.sigma)
	case c.timeStep != 0 && !validScale(c.timeStep):
		return fmt.Errorf("%w: frame step %v", ErrBadSynthParam, c.timeStep)
	}
	return nil
}

// Stretch simulates a tempo change: the result has round(Len()*factor)
// frames (at least one), and frame k is a copy of frame floor(k/factor).
// A factor above 1 slows the performance down by repeating frames, below 1
// speeds it up by dropping frames. TimeStep is preserved.
//
// Errors: ErrNoFrames for an empty s, ErrBadSynthParam for a factor that
// is not finite and > 0.
// Complexity: O(Len()·factor·Dim()).
func Stretch(s Sequence, factor float64) (Sequence, error) {
	if len(s.Frames) == 0 {
		return Sequence{}, ErrNoFrames
	}
	if !validScale(factor) {
		return Sequence{}, fmt.Errorf("%w: stretch factor %v", ErrBadSynthParam, factor)
	}
	n := len(s.Frames)
	out := max(1, int(math.Round(float64(n)*factor)))
	frames := make([][]float64, out)
	for k := range frames {
		src := min(n-1, int(float64(k)/factor))
		frames[k] = append([]float64(nil), s.Frames[src]...)
	}

	return Sequence{Frames: frames, TimeStep: s.TimeStep}, nil
}
