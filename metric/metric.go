// Package metric provides distance functions for float64 vectors.
//
// All functions report a dimension mismatch as an error instead of computing
// a truncated result. Every exported distance satisfies the triangle
// inequality, which branch-and-bound tree search relies on for correctness;
// this is why no squared-L2 variant is exported here.
package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/vptree/internal/math64"
)

// ErrZeroMagnitude is returned when an angle is requested for a zero vector.
var ErrZeroMagnitude = errors.New("metric: zero magnitude vector")

// ErrDimensionMismatch is a named error type for dimension mismatch.
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch.
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Func is a function type for distance calculation.
type Func func(a, b []float64) (float64, error)

// Metric represents the distance metric used for point comparison.
type Metric int

const (
	MetricEuclidean Metric = iota
	MetricManhattan
	MetricChebyshev
	MetricAngular
)

func (m Metric) String() string {
	switch m {
	case MetricEuclidean:
		return "Euclidean"
	case MetricManhattan:
		return "Manhattan"
	case MetricChebyshev:
		return "Chebyshev"
	case MetricAngular:
		return "Angular"
	default:
		return fmt.Sprintf("Unknown(%d)", m)
	}
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricEuclidean:
		return Euclidean, nil
	case MetricManhattan:
		return Manhattan, nil
	case MetricChebyshev:
		return Chebyshev, nil
	case MetricAngular:
		return Angular, nil
	default:
		return nil, fmt.Errorf("metric: unsupported metric: %v", m)
	}
}

// Euclidean calculates the L2 distance between two vectors.
func Euclidean(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	return math.Sqrt(math64.SquaredL2(a, b)), nil
}

// Manhattan calculates the L1 distance between two vectors.
func Manhattan(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	return math64.AbsDiffSum(a, b), nil
}

// Chebyshev calculates the L-infinity distance between two vectors.
func Chebyshev(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	return math64.MaxAbsDiff(a, b), nil
}

// Angular calculates the angle in radians between two vectors.
//
// Unlike plain cosine distance, the angle obeys the triangle inequality on
// vector directions. Parallel vectors of different magnitude have angle zero.
func Angular(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &ErrDimensionMismatch{Expected: len(a), Actual: len(b)}
	}

	na := math64.Norm(a)
	nb := math64.Norm(b)
	if na == 0 || nb == 0 {
		return 0, ErrZeroMagnitude
	}

	cos := math64.Dot(a, b) / (na * nb)

	// Clamp floating point drift outside [-1, 1] before acos.
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}

	return math.Acos(cos), nil
}
