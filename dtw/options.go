// SPDX-License-Identifier: MIT

// Package dtw: functional configuration for the alignment engine.
// This file defines:
//   - documented defaults (constants),
//   - Option / WithX setters,
//   - gatherOptions, which applies setters over the defaults and validates
//     the result once, so kernels never re-check configuration.
//
// Invalid values are reported as errors from the entry point (Align,
// Distance, CostMatrix, ...), never as panics.

package dtw

import (
	"fmt"
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/warpsync/distance"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultMetric is the local cost used when WithMetric is not given.
	DefaultMetric = distance.Cosine

	// DefaultPattern is the step pattern used when no pattern option is given.
	DefaultPattern = Symmetric1

	// DefaultWindow disables the Sakoe-Chiba band.
	DefaultWindow = -1

	// DefaultSlopePenalty adds nothing to non-diagonal steps.
	DefaultSlopePenalty = 0.0

	// DefaultWorkers means runtime.GOMAXPROCS(0).
	DefaultWorkers = 0

	// parallelMinCells is the matrix size below which row-parallel cost
	// evaluation is not worth scheduling goroutines.
	parallelMinCells = 1 << 14

	// wavefrontMinChunk is the smallest anti-diagonal slice handed to one goroutine.
	wavefrontMinChunk = 256
)

// Option mutates the engine configuration.
type Option func(*options)

// options stores the effective configuration after applying Option setters.
type options struct {
	metric       distance.Metric
	kind         PatternKind
	custom       *StepPattern
	window       int
	slopePenalty float64
	workers      int
	wavefront    bool
	logger       *slog.Logger

	// resolved by gatherOptions
	pattern StepPattern
	cost    distance.Func
}

// WithMetric selects the local cost metric. Default: distance.Cosine.
func WithMetric(m distance.Metric) Option {
	return func(o *options) { o.metric = m }
}

// WithPattern selects a predefined step pattern. Default: Symmetric1.
func WithPattern(kind PatternKind) Option {
	return func(o *options) {
		o.kind = kind
		o.custom = nil
	}
}

// WithStepPattern installs a pattern built with NewStepPattern.
// It overrides any earlier WithPattern.
func WithStepPattern(p StepPattern) Option {
	return func(o *options) { o.custom = &p }
}

// WithWindow sets the Sakoe-Chiba band: cells with |i-j| > w are excluded.
// w = -1 (default) disables the band; w < -1 is rejected with ErrBadWindow.
func WithWindow(w int) Option {
	return func(o *options) { o.window = w }
}

// WithSlopePenalty adds penalty to the accumulated cost of every
// non-diagonal step, biasing the path towards the diagonal.
func WithSlopePenalty(penalty float64) Option {
	return func(o *options) { o.slopePenalty = penalty }
}

// WithWorkers bounds the goroutines used by the cost matrix builder and the
// wavefront accumulator. 0 means GOMAXPROCS, 1 forces sequential execution.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithWavefront enables anti-diagonal parallel accumulation. Results are
// identical to the sequential sweep; it only pays off on large matrices.
func WithWavefront(enabled bool) Option {
	return func(o *options) { o.wavefront = enabled }
}

// WithLogger routes the engine's debug records to l. Default: discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// gatherOptions applies opts over the defaults and validates the result.
func gatherOptions(opts []Option) (*options, error) {
	o := &options{
		metric:       DefaultMetric,
		kind:         DefaultPattern,
		window:       DefaultWindow,
		slopePenalty: DefaultSlopePenalty,
		workers:      DefaultWorkers,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	cost, err := distance.Provider(o.metric)
	if err != nil {
		return nil, err
	}
	o.cost = cost

	if o.custom != nil {
		if len(o.custom.steps) == 0 {
			return nil, fmt.Errorf("%w: zero-value pattern", ErrInvalidStepPattern)
		}
		o.pattern = *o.custom
	} else {
		if o.pattern, err = Pattern(o.kind); err != nil {
			return nil, err
		}
	}

	if o.window < -1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWindow, o.window)
	}
	if o.slopePenalty < 0 || math.IsNaN(o.slopePenalty) || math.IsInf(o.slopePenalty, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrBadPenalty, o.slopePenalty)
	}
	if o.workers < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBadWorkers, o.workers)
	}
	if o.workers == 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o, nil
}

// inWindow reports whether (i,j) lies inside the Sakoe-Chiba band.
func (o *options) inWindow(i, j int) bool {
	if o.window < 0 {
		return true
	}
	d := i - j
	if d < 0 {
		d = -d
	}

	return d <= o.window
}

// penalty returns the additive cost of arriving through s.
func (o *options) penalty(s Step) float64 {
	if s.diagonal() {
		return 0
	}

	return o.slopePenalty
}
