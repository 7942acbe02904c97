// Validation helpers shared by the tour constructors and the 2-opt pass.
//
// These are deliberately narrow: the only distance matrices this package
// ever receives are the square, symmetric, non-negative matrices the
// planner's tour builder constructs (candidate pairwise distances plus a
// zero-cost dummy row/column). There is no ATSP ingestion path here.
package tsp

import (
	"math"
	"time"

	"github.com/northfield-robotics/covplanner/matrix"
)

// symTol bounds the asymmetry a matrix tagged Symmetric may exhibit before
// mustEnforceSymmetry rejects it. Distances are floats built from integer
// Euclidean costs, so a few ULPs of drift are expected and tolerated.
const symTol = 1e-6

// validateDistMatrix checks that dist is square, finite (except the
// allowed +Inf "missing edge" sentinel), and non-negative.
//
// Complexity: O(n^2).
func validateDistMatrix(dist matrix.Matrix) (int, error) {
	if dist == nil {
		return 0, ErrDimensionMismatch
	}
	n := dist.Rows()
	if n != dist.Cols() {
		return 0, ErrNonSquare
	}
	if n <= 0 {
		return 0, ErrDimensionMismatch
	}

	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, err = dist.At(i, j)
			if err != nil {
				return 0, ErrDimensionMismatch
			}
			if math.IsNaN(v) {
				return 0, ErrDimensionMismatch
			}
			if v < 0 {
				return 0, ErrNegativeWeight
			}
		}
	}
	return n, nil
}

// validateStartVertex checks start is within [0, n).
func validateStartVertex(start, n int) error {
	if start < 0 || start >= n {
		return ErrStartOutOfRange
	}
	return nil
}

// mustEnforceSymmetry reports whether dist violates |d(i,j)-d(j,i)| <=
// symTol anywhere, for callers that asserted Options.Symmetric == true.
//
// Complexity: O(n^2).
func mustEnforceSymmetry(dist matrix.Matrix, n int) error {
	var (
		i, j       int
		dij, dji   float64
		erri, errj error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			dij, erri = dist.At(i, j)
			dji, errj = dist.At(j, i)
			if erri != nil || errj != nil {
				return ErrDimensionMismatch
			}
			if math.Abs(dij-dji) > symTol {
				return ErrDimensionMismatch
			}
		}
	}
	return nil
}

// compatibleTimeBudget reports whether d is usable as a deadline duration
// (strictly positive); zero or negative durations disable the soft budget.
func compatibleTimeBudget(d time.Duration) bool {
	return d > 0
}
