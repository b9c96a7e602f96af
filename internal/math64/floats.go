// Package math64 provides scalar float64 vector kernels.
// This is an internal package - external users should use the metric package.
package math64

import "math"

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float64) float64 {
	var ret float64
	for i := range a {
		ret += a[i] * b[i]
	}

	return ret
}

// SquaredL2 calculates the squared L2 (Euclidean) distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var distance float64
	for i := range a {
		distance += (a[i] - b[i]) * (a[i] - b[i])
	}

	return distance
}

// AbsDiffSum calculates the sum of absolute coordinate differences (L1).
// Assumes vectors are the same length (caller's responsibility).
func AbsDiffSum(a, b []float64) float64 {
	var distance float64
	for i := range a {
		distance += math.Abs(a[i] - b[i])
	}

	return distance
}

// MaxAbsDiff calculates the largest absolute coordinate difference (L-inf).
// Assumes vectors are the same length (caller's responsibility).
func MaxAbsDiff(a, b []float64) float64 {
	var distance float64
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > distance {
			distance = d
		}
	}

	return distance
}

// Norm calculates the L2 norm of a vector.
func Norm(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}
