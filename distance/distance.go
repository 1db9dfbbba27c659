// SPDX-License-Identifier: MIT

package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrUnknownMetric is returned for metric names or values outside the supported set.
var ErrUnknownMetric = errors.New("distance: unknown metric")

// Metric selects the local cost function.
type Metric int

const (
	// Cosine is 1 − cos(a, b), in [0, 2]. Default.
	Cosine Metric = iota
	// Euclidean is the L2 distance √Σ(a−b)².
	Euclidean
	// Manhattan is the L1 distance Σ|a−b|.
	Manhattan
)

// String returns the lower-case name accepted by ParseMetric.
func (m Metric) String() string {
	switch m {
	case Cosine:
		return "cosine"
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// Valid reports whether m is one of the supported metrics.
func (m Metric) Valid() bool {
	return m >= Cosine && m <= Manhattan
}

// ParseMetric maps a case-insensitive name to a Metric.
func ParseMetric(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "cosine":
		return Cosine, nil
	case "euclidean", "l2":
		return Euclidean, nil
	case "manhattan", "l1", "cityblock":
		return Manhattan, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
}

// Func computes the dissimilarity of two equal-length vectors.
type Func func(a, b []float64) float64

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case Cosine:
		return CosineDistance, nil
	case Euclidean:
		return EuclideanDistance, nil
	case Manhattan:
		return ManhattanDistance, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMetric, m)
	}
}

// CosineDistance returns 1 − a·b/(‖a‖‖b‖), or 1 when either norm is zero.
// The result is clamped to [0, 2] so rounding never yields a negative cost.
func CosineDistance(a, b []float64) float64 {
	var dot, na, nb float64
	for k := range a {
		dot += a[k] * b[k]
		na += a[k] * a[k]
		nb += b[k] * b[k]
	}
	if na == 0 || nb == 0 {
		return 1
	}
	d := 1 - dot/math.Sqrt(na*nb)
	switch {
	case d < 0:
		return 0
	case d > 2:
		return 2
	}

	return d
}

// EuclideanDistance returns the L2 distance between a and b.
func EuclideanDistance(a, b []float64) float64 {
	var s float64
	for k := range a {
		d := a[k] - b[k]
		s += d * d
	}

	return math.Sqrt(s)
}

// ManhattanDistance returns the L1 distance between a and b.
func ManhattanDistance(a, b []float64) float64 {
	var s float64
	for k := range a {
		s += math.Abs(a[k] - b[k])
	}

	return s
}
