// SPDX-License-Identifier: MIT

// Package distance provides the local cost functions used to compare two
// feature vectors (for example 12-bin chroma frames).
//
// The set of metrics is closed: Cosine (the zero value and default),
// Euclidean and Manhattan. Select one by constant, or by name with
// ParseMetric, and obtain the function through Provider.
//
// Every Func is pure and stateless, returns a non-negative value and is safe
// to call from many goroutines at once. Vectors must share a length; that is
// the caller's responsibility (dtw.CostMatrix validates it once per call).
//
// Cosine distance is 1 − a·b/(‖a‖‖b‖). When either vector has zero norm the
// distance is defined as 1 (maximal dissimilarity for non-negative chroma)
// rather than NaN.
package distance
