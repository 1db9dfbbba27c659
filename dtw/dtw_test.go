package dtw_test

import (
	"bytes"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/warpsync/distance"
	"github.com/katalvlaran/warpsync/dtw"
	"github.com/katalvlaran/warpsync/feature"
	"github.com/katalvlaran/warpsync/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomChroma returns n non-negative, L2-normalized frames of dimension d.
func randomChroma(rng *rand.Rand, n, d int) [][]float64 {
	s := feature.Sequence{Frames: make([][]float64, n)}
	for i := range s.Frames {
		s.Frames[i] = make([]float64, d)
		for k := range s.Frames[i] {
			s.Frames[i][k] = rng.Float64()
		}
	}

	return s.Normalize().Frames
}

// stretch repeats every frame of src according to reps[i%len(reps)], emulating
// a slower performance of the same passage.
func stretch(src [][]float64, reps []int) [][]float64 {
	var out [][]float64
	for i, f := range src {
		for r := 0; r < reps[i%len(reps)]; r++ {
			out = append(out, f)
		}
	}

	return out
}

// requireValidPath checks the structural path invariants for an N×M alignment.
func requireValidPath(t *testing.T, p dtw.Path, pattern dtw.StepPattern, n, m int) {
	t.Helper()
	require.NotEmpty(t, p)
	require.Equal(t, dtw.Coord{I: 0, J: 0}, p[0], "path starts at origin")
	require.Equal(t, dtw.Coord{I: n - 1, J: m - 1}, p[len(p)-1], "path ends at terminal cell")
	for k := 1; k < len(p); k++ {
		require.True(t, pattern.Allows(p[k-1], p[k]), "step %v -> %v not in pattern", p[k-1], p[k])
		require.GreaterOrEqual(t, p[k].I, p[k-1].I)
		require.GreaterOrEqual(t, p[k].J, p[k-1].J)
	}
}

// TestAlign_ConcreteScenario covers the 3×2 chroma example.
func TestAlign_ConcreteScenario(t *testing.T) {
	a := [][]float64{{1, 0}, {1, 0}, {0, 1}}
	b := [][]float64{{1, 0}, {0, 1}}

	res, err := dtw.Align(a, b, dtw.WithMetric(distance.Cosine))
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0, 1}, {0, 1}, {1, 0}}, res.Cost.ToRows())
	assert.Equal(t, [][]float64{{0, 1}, {0, 1}, {1, 0}}, res.Accumulated.ToRows())
	assert.Equal(t, dtw.Path{{0, 0}, {1, 0}, {2, 1}}, res.Path)
	assert.Equal(t, 0.0, res.Distance)
	assert.Equal(t, 0.0, res.NormalizedDistance)
}

// TestAlign_SingleFrame checks the 1×1 boundary.
func TestAlign_SingleFrame(t *testing.T) {
	res, err := dtw.Align([][]float64{{0.6, 0.8}}, [][]float64{{0.6, 0.8}})
	require.NoError(t, err)
	assert.Equal(t, dtw.Path{{0, 0}}, res.Path)
	assert.Equal(t, 0.0, res.Distance)
}

// TestAlign_Errors verifies the eager input checks.
func TestAlign_Errors(t *testing.T) {
	three := [][]float64{{1, 0, 0}, {0, 1, 0}}
	four := [][]float64{{1, 0, 0, 0}}

	_, err := dtw.Align(three, four)
	require.ErrorIs(t, err, dtw.ErrDimensionMismatch)

	_, err = dtw.Align([][]float64{{1, 0}, {1}}, [][]float64{{1, 0}})
	require.ErrorIs(t, err, dtw.ErrDimensionMismatch, "ragged first sequence")

	_, err = dtw.Align([][]float64{{}}, [][]float64{{}})
	require.ErrorIs(t, err, dtw.ErrDimensionMismatch, "zero-dimension frames")

	_, err = dtw.Align(nil, three)
	require.ErrorIs(t, err, dtw.ErrEmptySequence)

	_, err = dtw.Align(three, [][]float64{})
	require.ErrorIs(t, err, dtw.ErrEmptySequence)
}

// TestAlign_BadOptions verifies option validation at the entry point.
func TestAlign_BadOptions(t *testing.T) {
	a := [][]float64{{1}}
	tests := []struct {
		name string
		opt  dtw.Option
		want error
	}{
		{"Window", dtw.WithWindow(-2), dtw.ErrBadWindow},
		{"Workers", dtw.WithWorkers(-1), dtw.ErrBadWorkers},
		{"PenaltyNegative", dtw.WithSlopePenalty(-0.5), dtw.ErrBadPenalty},
		{"PenaltyNaN", dtw.WithSlopePenalty(math.NaN()), dtw.ErrBadPenalty},
		{"Pattern", dtw.WithPattern(dtw.PatternKind(42)), dtw.ErrUnknownPattern},
		{"ZeroPattern", dtw.WithStepPattern(dtw.StepPattern{}), dtw.ErrInvalidStepPattern},
		{"Metric", dtw.WithMetric(distance.Metric(9)), distance.ErrUnknownMetric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dtw.Align(a, a, tt.opt)
			require.ErrorIs(t, err, tt.want)
			_, err = dtw.Distance(a, a, tt.opt)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

// TestAlign_SelfIsIdentity checks that aligning a sequence with itself
// yields the diagonal path and zero cost.
func TestAlign_SelfIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := randomChroma(rng, 25, 12)

	res, err := dtw.Align(a, a)
	require.NoError(t, err)
	require.Len(t, res.Path, len(a))
	for k, c := range res.Path {
		assert.Equal(t, dtw.Coord{I: k, J: k}, c)
	}
	assert.Equal(t, 0.0, res.Distance)
}

// TestAlign_PathInvariants checks endpoints, steps, monotonicity and the
// length bounds max(N,M) <= len <= N+M-1 on random inputs.
func TestAlign_PathInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	sym1, err := dtw.Pattern(dtw.Symmetric1)
	require.NoError(t, err)

	for trial := 0; trial < 20; trial++ {
		n, m := 1+rng.Intn(30), 1+rng.Intn(30)
		a, b := randomChroma(rng, n, 12), randomChroma(rng, m, 12)

		res, err := dtw.Align(a, b)
		require.NoError(t, err)
		requireValidPath(t, res.Path, sym1, n, m)
		assert.GreaterOrEqual(t, len(res.Path), max(n, m))
		assert.LessOrEqual(t, len(res.Path), n+m-1)

		var sum float64
		for _, c := range res.Path {
			v, _ := res.Cost.At(c.I, c.J)
			sum += v
		}
		assert.InDelta(t, res.Distance, sum, 1e-9, "distance equals cost summed along the path")
	}
}

// TestAccumulate_Monotone checks the monotonicity D actually guarantees for
// non-negative local costs: along the first row, the first column and the
// warping path D never decreases, and every cell is at least its cheapest
// predecessor. Interior rows and columns may decrease (C=[[0,5],[0,0]]).
func TestAccumulate_Monotone(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, b := randomChroma(rng, 17, 12), randomChroma(rng, 23, 12)

	res, err := dtw.Align(a, b)
	require.NoError(t, err)
	d := res.Accumulated
	at := func(i, j int) float64 {
		v, err := d.At(i, j)
		require.NoError(t, err)
		return v
	}
	for i := 1; i < d.Rows(); i++ {
		assert.GreaterOrEqual(t, at(i, 0), at(i-1, 0))
	}
	for j := 1; j < d.Cols(); j++ {
		assert.GreaterOrEqual(t, at(0, j), at(0, j-1))
	}
	for i := 1; i < d.Rows(); i++ {
		for j := 1; j < d.Cols(); j++ {
			assert.GreaterOrEqual(t, at(i, j), math.Min(at(i-1, j-1), math.Min(at(i-1, j), at(i, j-1))))
		}
	}
	for k := 1; k < len(res.Path); k++ {
		prev, cur := res.Path[k-1], res.Path[k]
		assert.GreaterOrEqual(t, at(cur.I, cur.J), at(prev.I, prev.J))
	}

	c, err := matrix.FromRows([][]float64{{0, 5}, {0, 0}})
	require.NoError(t, err)
	d2, err := dtw.Accumulate(c)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 5}, {0, 0}}, d2.ToRows())
}

// TestAlign_SwapTransposes checks that swapping inputs transposes the path
// and keeps the terminal cost. Random continuous inputs have no exact ties.
func TestAlign_SwapTransposes(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a, b := randomChroma(rng, 14, 12), randomChroma(rng, 9, 12)

	ab, err := dtw.Align(a, b)
	require.NoError(t, err)
	ba, err := dtw.Align(b, a)
	require.NoError(t, err)

	assert.Equal(t, ab.Distance, ba.Distance)
	assert.Equal(t, ab.Path.Transpose(), ba.Path)
	assert.True(t, ab.Cost.Transpose().AllClose(ba.Cost, 0))
}

// TestAlign_TempoChange recovers a known time stretch: every frame of the
// slow version must map back to the frame it was copied from.
func TestAlign_TempoChange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	fast := randomChroma(rng, 20, 12)
	reps := []int{1, 2, 3, 2}
	slow := stretch(fast, reps)

	res, err := dtw.Align(fast, slow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Distance)

	origin := make([]int, 0, len(slow))
	for i := range fast {
		for r := 0; r < reps[i%len(reps)]; r++ {
			origin = append(origin, i)
		}
	}
	for _, c := range res.Path {
		assert.Equal(t, origin[c.J], c.I, "slow frame %d", c.J)
	}
}

// TestAlign_TieBreakPrefersDiagonal uses constant frames so every
// predecessor ties; the path must use diagonals first, then vertical steps.
func TestAlign_TieBreakPrefersDiagonal(t *testing.T) {
	a := [][]float64{{1, 0}, {1, 0}, {1, 0}, {1, 0}}
	b := [][]float64{{1, 0}, {1, 0}}

	res, err := dtw.Align(a, b)
	require.NoError(t, err)
	// Backwards from (3,1): diagonal to (2,0), then vertical to the origin.
	assert.Equal(t, dtw.Path{{0, 0}, {1, 0}, {2, 0}, {3, 1}}, res.Path)

	res, err = dtw.Align(b, a)
	require.NoError(t, err)
	assert.Equal(t, dtw.Path{{0, 0}, {0, 1}, {0, 2}, {1, 3}}, res.Path)
}

// TestAlign_Window checks the Sakoe-Chiba band.
func TestAlign_Window(t *testing.T) {
	a := [][]float64{{1, 0}, {0, 1}, {1, 1}}
	b := [][]float64{{1, 0}, {0, 1}, {1, 1}, {1, 2}}

	_, err := dtw.Align(a, b, dtw.WithWindow(0))
	require.ErrorIs(t, err, dtw.ErrNoPath, "window 0 with a length mismatch")
	_, err = dtw.Distance(a, b, dtw.WithWindow(0))
	require.ErrorIs(t, err, dtw.ErrNoPath)

	res, err := dtw.Align(a, b, dtw.WithWindow(1))
	require.NoError(t, err)
	for _, c := range res.Path {
		assert.LessOrEqual(t, abs(c.I-c.J), 1)
	}
	v, _ := res.Accumulated.At(0, 2)
	assert.True(t, math.IsInf(v, 1), "cells outside the band hold +Inf")

	unlimited, err := dtw.Align(a, b, dtw.WithWindow(-1))
	require.NoError(t, err)
	assert.LessOrEqual(t, unlimited.Distance, res.Distance)
}

// TestAlign_SlopePenalty verifies the penalty is charged per non-diagonal step.
func TestAlign_SlopePenalty(t *testing.T) {
	a := [][]float64{{1}, {2}, {3}}
	b := [][]float64{{1}, {1}, {2}, {3}}
	euclid := dtw.WithMetric(distance.Euclidean)

	free, err := dtw.Align(a, b, euclid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, free.Distance)

	penalized, err := dtw.Align(a, b, euclid, dtw.WithSlopePenalty(1))
	require.NoError(t, err)
	assert.Equal(t, 1.0, penalized.Distance, "one horizontal step is unavoidable")
	assert.Len(t, penalized.Path, 4)
}

// TestAlign_Symmetric2 checks the diagonal weight doubles the diagonal cost.
func TestAlign_Symmetric2(t *testing.T) {
	a := [][]float64{{0}, {1}}
	b := [][]float64{{0}, {3}}
	res, err := dtw.Align(a, b, dtw.WithMetric(distance.Manhattan), dtw.WithPattern(dtw.Symmetric2))
	require.NoError(t, err)
	// C = [[0,3],[1,2]]; diagonal 0+2*2=4, via (1,0): 1+2=3, via (0,1): 3+2=5.
	assert.Equal(t, 3.0, res.Distance)
	assert.Equal(t, dtw.Path{{0, 0}, {1, 0}, {1, 1}}, res.Path)
}

// TestAlign_SlopeLimited checks a pattern with two-cell steps and its
// reachability limits.
func TestAlign_SlopeLimited(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p, err := dtw.Pattern(dtw.SlopeLimited)
	require.NoError(t, err)

	a, b := randomChroma(rng, 10, 12), randomChroma(rng, 15, 12)
	res, err := dtw.Align(a, b, dtw.WithPattern(dtw.SlopeLimited))
	require.NoError(t, err)
	requireValidPath(t, res.Path, p, 10, 15)

	dist, err := dtw.Distance(a, b, dtw.WithPattern(dtw.SlopeLimited))
	require.NoError(t, err)
	assert.Equal(t, res.Distance, dist)

	_, err = dtw.Align(randomChroma(rng, 3, 12), randomChroma(rng, 9, 12), dtw.WithPattern(dtw.SlopeLimited))
	require.ErrorIs(t, err, dtw.ErrNoPath, "slope > 2 is unreachable")
}

// TestDistance_MatchesAlign checks the rolling mode is bit-identical to the
// full matrix, in both orientations and under several configurations.
func TestDistance_MatchesAlign(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	configs := [][]dtw.Option{
		nil,
		{dtw.WithPattern(dtw.Symmetric2)},
		{dtw.WithMetric(distance.Euclidean), dtw.WithWindow(8)},
		{dtw.WithMetric(distance.Manhattan), dtw.WithSlopePenalty(0.25)},
	}
	for _, opts := range configs {
		for trial := 0; trial < 5; trial++ {
			a, b := randomChroma(rng, 5+rng.Intn(20), 12), randomChroma(rng, 5+rng.Intn(20), 12)

			full, err := dtw.Align(a, b, opts...)
			if err != nil {
				require.ErrorIs(t, err, dtw.ErrNoPath)
				_, err = dtw.Distance(a, b, opts...)
				require.ErrorIs(t, err, dtw.ErrNoPath)
				continue
			}
			dist, err := dtw.Distance(a, b, opts...)
			require.NoError(t, err)
			assert.Equal(t, full.Distance, dist)
		}
	}
}

// TestAlign_ParallelMatchesSequential checks that row-parallel cost
// evaluation and wavefront accumulation do not change any bit of the result.
func TestAlign_ParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	a, b := randomChroma(rng, 700, 12), randomChroma(rng, 600, 12)

	seq, err := dtw.Align(a, b, dtw.WithWorkers(1))
	require.NoError(t, err)
	par, err := dtw.Align(a, b, dtw.WithWorkers(4), dtw.WithWavefront(true))
	require.NoError(t, err)

	assert.True(t, seq.Cost.AllClose(par.Cost, 0))
	assert.True(t, seq.Accumulated.AllClose(par.Accumulated, 0))
	assert.Equal(t, seq.Path, par.Path)
	assert.Equal(t, seq.Distance, par.Distance)
}

// TestCostMatrixAccumulateBacktrack runs the three stages separately and
// checks they agree with Align.
func TestCostMatrixAccumulateBacktrack(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	a, b := randomChroma(rng, 12, 12), randomChroma(rng, 16, 12)
	opts := []dtw.Option{dtw.WithPattern(dtw.Symmetric2), dtw.WithSlopePenalty(0.1)}

	c, err := dtw.CostMatrix(a, b, opts...)
	require.NoError(t, err)
	d, err := dtw.Accumulate(c, opts...)
	require.NoError(t, err)
	p, err := dtw.Backtrack(d, c, opts...)
	require.NoError(t, err)

	res, err := dtw.Align(a, b, opts...)
	require.NoError(t, err)
	assert.True(t, res.Cost.AllClose(c, 0))
	assert.True(t, res.Accumulated.AllClose(d, 0))
	assert.Equal(t, res.Path, p)
}

// TestAccumulate_Errors covers the matrix-level entry points.
func TestAccumulate_Errors(t *testing.T) {
	_, err := dtw.Accumulate(nil)
	require.ErrorIs(t, err, dtw.ErrEmptySequence)

	_, err = dtw.Accumulate(&matrix.Dense{})
	require.ErrorIs(t, err, dtw.ErrEmptySequence)

	_, err = dtw.CostMatrix(nil, [][]float64{{1}})
	require.ErrorIs(t, err, dtw.ErrEmptySequence)

	_, err = dtw.CostMatrix([][]float64{{1, 2, 3}}, [][]float64{{1, 2, 3, 4}})
	require.ErrorIs(t, err, dtw.ErrDimensionMismatch)
}

// TestBacktrack_Inconsistent feeds matrices that violate the recurrence.
func TestBacktrack_Inconsistent(t *testing.T) {
	c, err := matrix.FromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	bogus, err := matrix.FromRows([][]float64{{0, 1}, {1, 7}})
	require.NoError(t, err)
	_, err = dtw.Backtrack(bogus, c)
	require.ErrorIs(t, err, dtw.ErrUnreachableOrigin)

	blocked, err := matrix.FromRows([][]float64{{math.Inf(1), math.Inf(1)}, {math.Inf(1), 0}})
	require.NoError(t, err)
	_, err = dtw.Backtrack(blocked, c)
	require.ErrorIs(t, err, dtw.ErrUnreachableOrigin)

	noPath, err := matrix.FromRows([][]float64{{0, 1}, {1, math.Inf(1)}})
	require.NoError(t, err)
	_, err = dtw.Backtrack(noPath, c)
	require.ErrorIs(t, err, dtw.ErrNoPath)

	_, err = dtw.Backtrack(&matrix.Dense{}, &matrix.Dense{})
	require.ErrorIs(t, err, dtw.ErrEmptySequence)

	wide, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = dtw.Backtrack(wide, c)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

// TestAlignSequences checks the feature.Sequence entry point.
func TestAlignSequences(t *testing.T) {
	a := feature.Sequence{Frames: [][]float64{{1, 0}, {1, 0}, {0, 1}}, TimeStep: 0.5}
	b := feature.Sequence{Frames: [][]float64{{1, 0}, {0, 1}}, TimeStep: 1}

	res, err := dtw.AlignSequences(a, b)
	require.NoError(t, err)
	times, err := dtw.MapTimes(res.Path, a.TimeStep, b.TimeStep)
	require.NoError(t, err)
	assert.Equal(t, []dtw.TimePair{{0, 0}, {0.5, 0}, {1, 1}}, times)
}

// TestAlign_Logger checks debug records reach a configured logger.
func TestAlign_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := dtw.Align([][]float64{{1, 0}}, [][]float64{{0, 1}}, dtw.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "dtw alignment complete")
	assert.Contains(t, buf.String(), "path_len=1")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}

// TestAlign_SynthStretch aligns a synthetic performance against a slowed
// copy: every slow frame must map back to the frame it was copied from.
func TestAlign_SynthStretch(t *testing.T) {
	ref, err := feature.Synth(40, 11, feature.WithNoise(0.05), feature.WithFrameStep(0.1))
	require.NoError(t, err)
	slow, err := feature.Stretch(ref, 2.5)
	require.NoError(t, err)
	require.Equal(t, 100, slow.Len())

	res, err := dtw.AlignSequences(ref, slow)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Distance)

	for _, c := range res.Path {
		assert.Equal(t, int(float64(c.J)/2.5), c.I, "slow frame %d", c.J)
	}
}
