// SPDX-License-Identifier: MIT

package dtw

import (
	"fmt"
	"math"
)

// MapTimes converts a warping path into real time offsets:
// T1 = I*step1 and T2 = J*step2, where stepN is the duration of one frame
// of sequence N in seconds (hop / sample rate).
//
// Errors: ErrInvalidTimeScale when either step is <= 0, NaN or ±Inf.
// Complexity: O(len(path)).
func MapTimes(path Path, step1, step2 float64) ([]TimePair, error) {
	if !validScale(step1) || !validScale(step2) {
		return nil, fmt.Errorf("MapTimes: steps (%v, %v): %w", step1, step2, ErrInvalidTimeScale)
	}
	out := make([]TimePair, len(path))
	for k, c := range path {
		out[k] = TimePair{T1: float64(c.I) * step1, T2: float64(c.J) * step2}
	}

	return out, nil
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
