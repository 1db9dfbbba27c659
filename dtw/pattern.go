// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"
	"strings"
)

// maxSteps bounds a pattern so a step index fits the int8 predecessor matrix.
const maxSteps = math.MaxInt8

// Step is one allowed transition: the predecessor of (i,j) is (i-DI, j-DJ),
// and the local cost C[i][j] is multiplied by Weight when arriving through it.
type Step struct {
	DI, DJ int
	Weight float64
}

// diagonal reports whether the step advances both sequences equally;
// the slope penalty applies to every other step.
func (s Step) diagonal() bool { return s.DI == s.DJ }

// StepPattern is an ordered set of steps. Order is the tie-break priority:
// when two predecessors yield exactly the same accumulated cost, the one
// listed first wins.
type StepPattern struct {
	name  string
	steps []Step
	maxDI int
	maxDJ int
}

// PatternKind enumerates the predefined step patterns.
type PatternKind int

const (
	// Symmetric1 allows diagonal, vertical and horizontal unit steps, all
	// with weight 1: D[i][j] = C[i][j] + min(D[i-1][j-1], D[i-1][j], D[i][j-1]).
	// Default.
	Symmetric1 PatternKind = iota

	// Symmetric2 is Symmetric1 with the diagonal step weighted by 2, so a
	// diagonal move costs as much as the vertical+horizontal detour it replaces.
	Symmetric2

	// SlopeLimited allows (1,1), (2,1) and (1,2): no sequence may stall, and
	// the local slope stays within [1/2, 2].
	SlopeLimited
)

// String returns the name accepted by ParsePattern.
func (k PatternKind) String() string {
	switch k {
	case Symmetric1:
		return "symmetric1"
	case Symmetric2:
		return "symmetric2"
	case SlopeLimited:
		return "slope-limited"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ParsePattern maps a case-insensitive name to a PatternKind.
func ParsePattern(name string) (PatternKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "symmetric1", "symmetric":
		return Symmetric1, nil
	case "symmetric2":
		return Symmetric2, nil
	case "slope-limited", "slopelimited":
		return SlopeLimited, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPattern, name)
	}
}

// Pattern returns the predefined pattern for kind. Steps are listed
// diagonal first, then vertical (i advances), then horizontal (j advances).
func Pattern(kind PatternKind) (StepPattern, error) {
	var steps []Step
	switch kind {
	case Symmetric1:
		steps = []Step{{1, 1, 1}, {1, 0, 1}, {0, 1, 1}}
	case Symmetric2:
		steps = []Step{{1, 1, 2}, {1, 0, 1}, {0, 1, 1}}
	case SlopeLimited:
		steps = []Step{{1, 1, 1}, {2, 1, 1}, {1, 2, 1}}
	default:
		return StepPattern{}, fmt.Errorf("%w: %v", ErrUnknownPattern, kind)
	}
	p, err := NewStepPattern(steps...)
	if err != nil {
		return StepPattern{}, err
	}
	p.name = kind.String()

	return p, nil
}

// NewStepPattern builds a custom pattern. Every step must move forward
// (DI, DJ >= 0, not both zero), carry a finite positive weight and be unique.
// Complexity: O(k²) for k steps.
func NewStepPattern(steps ...Step) (StepPattern, error) {
	if len(steps) == 0 {
		return StepPattern{}, fmt.Errorf("%w: no steps", ErrInvalidStepPattern)
	}
	if len(steps) > maxSteps {
		return StepPattern{}, fmt.Errorf("%w: %d steps exceeds %d", ErrInvalidStepPattern, len(steps), maxSteps)
	}
	p := StepPattern{name: "custom", steps: make([]Step, len(steps))}
	for k, s := range steps {
		if s.DI < 0 || s.DJ < 0 || (s.DI == 0 && s.DJ == 0) {
			return StepPattern{}, fmt.Errorf("%w: step %d (%d,%d) does not move forward", ErrInvalidStepPattern, k, s.DI, s.DJ)
		}
		if !(s.Weight > 0) || math.IsInf(s.Weight, 1) {
			return StepPattern{}, fmt.Errorf("%w: step %d weight %v", ErrInvalidStepPattern, k, s.Weight)
		}
		for _, prev := range p.steps[:k] {
			if prev.DI == s.DI && prev.DJ == s.DJ {
				return StepPattern{}, fmt.Errorf("%w: duplicate step (%d,%d)", ErrInvalidStepPattern, s.DI, s.DJ)
			}
		}
		p.steps[k] = s
		p.maxDI = max(p.maxDI, s.DI)
		p.maxDJ = max(p.maxDJ, s.DJ)
	}

	return p, nil
}

// Steps returns a copy of the steps in priority order.
func (p StepPattern) Steps() []Step {
	return append([]Step(nil), p.steps...)
}

// String returns the pattern name ("symmetric1", ..., or "custom").
func (p StepPattern) String() string { return p.name }

// Allows reports whether moving from a to b is one of the pattern's steps.
func (p StepPattern) Allows(a, b Coord) bool {
	for _, s := range p.steps {
		if b.I-a.I == s.DI && b.J-a.J == s.DJ {
			return true
		}
	}

	return false
}

// transpose swaps the roles of the two sequences.
func (p StepPattern) transpose() StepPattern {
	t := StepPattern{name: p.name, steps: make([]Step, len(p.steps)), maxDI: p.maxDJ, maxDJ: p.maxDI}
	for k, s := range p.steps {
		t.steps[k] = Step{DI: s.DJ, DJ: s.DI, Weight: s.Weight}
	}

	return t
}
