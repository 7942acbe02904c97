// Package tsp_test validates tour utilities and cost routines.
// Contract: strict sentinels, deterministic outcomes, table-driven structure.
package tsp_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/northfield-robotics/covplanner/matrix"
	"github.com/northfield-robotics/covplanner/tsp"
)

//
// Helpers
//

func withEdge(a [][]float64, i, j int, w float64) matrix.Matrix {
	cp := clone2D(a)
	cp[i][j] = w
	cp[j][i] = w // symmetric for these tests
	return testDense{a: cp}
}

func round1e9(x float64) int64 { return int64(math.Round(x * 1e9)) }

//
// 1) Validation — tsp.ValidateTour
//

func TestValidateTour_InvalidLength_Duplicates_OOB(t *testing.T) {
	const n = 4
	const start = 0

	t.Run("length != n -> ErrDimensionMismatch", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			tour := []int{0, 1, 2} // len=3, expect n=4
			err := tsp.ValidateTour(tour, n, start)
			if !errors.Is(err, tsp.ErrDimensionMismatch) {
				t.Fatalf("want ErrDimensionMismatch, got %v", err)
			}
		})
	})

	t.Run("duplicates -> ErrDimensionMismatch", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			tour := []int{0, 1, 1, 3, 0} // right length, vertex 1 repeated
			err := tsp.ValidateTour(tour, n, start)
			if !errors.Is(err, tsp.ErrDimensionMismatch) {
				t.Fatalf("want ErrDimensionMismatch, got %v", err)
			}
		})
	})

	t.Run("out-of-range -> ErrDimensionMismatch", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			tour := []int{0, 1, 2, 9, 0} // right length, vertex 9 >= n
			err := tsp.ValidateTour(tour, n, start)
			if !errors.Is(err, tsp.ErrDimensionMismatch) {
				t.Fatalf("want ErrDimensionMismatch, got %v", err)
			}
		})
	})
}

//
// 2) Validation — TourCost error paths (+Inf/-Inf, negative, NaN)
//
// TourCost sums the edges of the OPEN path, i.e. pairs (tour[i], tour[i+1]),
// with no implicit closing edge back to start. The bad weights below are
// placed on exactly those pairs.
//

func TestTourCost_StrictSentinels_OnBadEdges(t *testing.T) {
	base := [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	}

	t.Run("+Inf edge -> ErrIncompleteGraph", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			m := withEdge(base, 0, 1, math.Inf(+1))
			tour := []int{0, 1, 2}
			_, err := tsp.TourCost(m, tour)
			if !errors.Is(err, tsp.ErrIncompleteGraph) {
				t.Fatalf("want ErrIncompleteGraph, got %v", err)
			}
		})
	})

	t.Run("-Inf edge -> ErrIncompleteGraph", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			m := withEdge(base, 1, 2, math.Inf(-1))
			tour := []int{0, 1, 2}
			_, err := tsp.TourCost(m, tour)
			if !errors.Is(err, tsp.ErrIncompleteGraph) {
				t.Fatalf("want ErrIncompleteGraph, got %v", err)
			}
		})
	})

	t.Run("negative edge -> ErrNegativeWeight", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			m := withEdge(base, 1, 2, -5)
			tour := []int{0, 1, 2}
			_, err := tsp.TourCost(m, tour)
			if !errors.Is(err, tsp.ErrNegativeWeight) {
				t.Fatalf("want ErrNegativeWeight, got %v", err)
			}
		})
	})

	t.Run("NaN edge -> ErrDimensionMismatch", func(t *testing.T) {
		Repeat(t, 3, func(t *testing.T) {
			m := withEdge(base, 0, 1, math.NaN())
			tour := []int{0, 1, 2}
			_, err := tsp.TourCost(m, tour)
			if !errors.Is(err, tsp.ErrDimensionMismatch) {
				t.Fatalf("want ErrDimensionMismatch, got %v", err)
			}
		})
	})
}

//
// 3) Medium — CanonicalizeOrientationInPlace
//    If tour[1] > tour[n-1], reverse segment [1..n-1] in-place.
//

func TestCanonicalizeOrientationInPlace(t *testing.T) {
	t.Run("mirrors [1..n-1] when right-neighbor > left", func(t *testing.T) {
		tour := []int{0, 4, 1, 2, 3, 0} // tour[1]=4 > tour[n-1]=3 => mirror [1..4]
		want := []int{0, 3, 2, 1, 4, 0}

		if err := tsp.CanonicalizeOrientationInPlace(tour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(tour, want) {
			t.Fatalf("canonicalize mismatch:\n got:  %v\n want: %v", tour, want)
		}
	})

	t.Run("keeps orientation when right-neighbor <= left", func(t *testing.T) {
		tour := []int{0, 1, 2, 3, 4, 0} // 1 <= 4 => no change
		want := append([]int(nil), tour...)

		if err := tsp.CanonicalizeOrientationInPlace(tour); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(tour, want) {
			t.Fatalf("unexpected change:\n got:  %v\n want: %v", tour, want)
		}
	})
}

//
// 4) Special — identical cost across different Matrix implementations
//

func TestTourCost_IdenticalAcrossImplementations(t *testing.T) {
	tour := []int{0, 1, 2, 3} // open path cost
	a := [][]float64{
		{0, 1, 9, 4},
		{1, 0, 5, 6},
		{9, 5, 0, 2},
		{4, 6, 2, 0},
	}

	m1 := testDense{a: clone2D(a)}
	m2 := altDense{a: clone2D(a)}

	c1, err1 := tsp.TourCost(m1, tour)
	c2, err2 := tsp.TourCost(m2, tour)

	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: err1=%v err2=%v", err1, err2)
	}
	if round1e9(c1) != round1e9(c2) {
		t.Fatalf("cost mismatch across impls: c1=%.12f c2=%.12f", c1, c2)
	}
}

//
// 5) Medium — IndexOfStart / CopyTour / DebugString
//

func TestIndexOfStart(t *testing.T) {
	tour := []int{2, 0, 1, 2}
	if got := tsp.IndexOfStart(tour, 0); got != 1 {
		t.Fatalf("want index 1, got %d", got)
	}
	if got := tsp.IndexOfStart(tour, 9); got != -1 {
		t.Fatalf("want -1 for missing vertex, got %d", got)
	}
}

func TestCopyTour_Independence(t *testing.T) {
	tour := []int{0, 1, 2, 0}
	cp := tsp.CopyTour(tour)
	cp[1] = 9
	if tour[1] == 9 {
		t.Fatalf("CopyTour aliased the source slice")
	}
}
