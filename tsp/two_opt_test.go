// Package tsp_test exercises the 2-opt local search via the public API.
// Focus: determinism, epsilon semantics, correctness on symmetric/ATSP cases,
// and safe handling of +Inf candidates.
package tsp_test

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"

	"github.com/northfield-robotics/covplanner/matrix"
	"github.com/northfield-robotics/covplanner/tsp"
)

// trivialTour returns the closed identity tour 0,1,...,n-1,0 as a seed for
// TwoOpt, since TwoOpt refines rather than constructs.
func trivialTour(n int) []int {
	tour := make([]int, n+1)
	for i := 0; i < n; i++ {
		tour[i] = i
	}
	tour[n] = 0
	return tour
}

func run2opt(m matrix.Matrix, eps float64, symmetric bool, start int, timeLimit time.Duration) ([]int, float64, error) {
	n := m.Rows()
	opts := tsp.DefaultOptions(start)
	opts.Symmetric = symmetric
	opts.Eps = eps
	opts.TimeLimit = timeLimit

	return tsp.TwoOpt(m, trivialTour(n), opts)
}

// sameCycleEitherDir checks whether two tours represent the same cycle when
// both start at 0; reversal of orientation is allowed. Accepts open or
// closed input.
func sameCycleEitherDir(a, b []int) bool {
	a = normalizeOpenCycle(a)
	b = normalizeOpenCycle(b)

	if len(a) == 0 || len(a) != len(b) || a[0] != 0 || b[0] != 0 {
		return false
	}
	if slices.Equal(a, b) {
		return true
	}
	n := len(a)
	rev := make([]int, n)
	rev[0] = 0
	var i int
	for i = 1; i < n; i++ {
		rev[i] = a[n-i]
	}

	return slices.Equal(rev, b)
}

func TestTwoOpt_ImprovesConvexHexagon(t *testing.T) {
	const n = 6
	pts := [][2]float64{
		{1, 0}, {0.5, math.Sqrt(3) / 2}, {-0.5, math.Sqrt(3) / 2},
		{-1, 0}, {-0.5, -math.Sqrt(3) / 2}, {0.5, -math.Sqrt(3) / 2},
	}
	m := euclid(pts)
	want := []int{0, 1, 2, 3, 4, 5} // polygon boundary (either orientation)

	Repeat(t, 3, func(t *testing.T) {
		tour, cost, err := run2opt(m, epsTiny, true, startV, 0)
		if err != nil {
			t.Fatalf("TwoOpt error: %v", err)
		}
		if err = tsp.ValidateTour(tour, n, 0); err != nil {
			t.Fatalf("returned tour invalid: %v", err)
		}
		rot := rotateToStart0(t, tour)
		if !sameCycleEitherDir(rot, want) {
			t.Fatalf("unexpected tour:\n got:  %v\n want: %v (either direction, start=0)", rot, want)
		}
		if round1e9(cost) <= 0 {
			t.Fatalf("non-positive cost: %d", round1e9(cost))
		}
	})
}

func TestTwoOpt_EpsMonotonicity(t *testing.T) {
	pts := [][2]float64{
		{0, 0}, {1, 0}, {2, 0.05}, {3, 0}, {4, 0}, // slight non-collinearity
	}
	m := euclid(pts)

	loTour, loCost, err := run2opt(m, epsTiny, true, startV, 0)
	if err != nil {
		t.Fatalf("low-eps run failed: %v", err)
	}
	hiTour, hiCost, err := run2opt(m, 1e-1, true, startV, 0) // large eps blocks tiny deltas
	if err != nil {
		t.Fatalf("high-eps run failed: %v", err)
	}

	if round1e9(hiCost) < round1e9(loCost) {
		t.Fatalf("eps monotonicity violated: high-eps cost %d < low-eps cost %d", round1e9(hiCost), round1e9(loCost))
	}
	if err = tsp.ValidateTour(loTour, len(pts), 0); err != nil {
		t.Fatalf("low-eps tour invalid: %v", err)
	}
	if err = tsp.ValidateTour(hiTour, len(pts), 0); err != nil {
		t.Fatalf("high-eps tour invalid: %v", err)
	}
}

func TestTwoOpt_ATSP_BasicSuccessorOrder(t *testing.T) {
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	m := euclidAsym(pts, 0.2)

	tour, _, err := run2opt(m, epsTiny, false, startV, 0)
	if err != nil {
		t.Fatalf("ATSP 2-opt failed: %v", err)
	}
	if err = tsp.ValidateTour(tour, 4, 0); err != nil {
		t.Fatalf("ATSP tour invalid: %v", err)
	}
}

// TestTwoOpt_RejectsInfCandidates_NoError blocks an improving move by making
// one of the new chords +Inf; the cost must not "improve" via a missing edge.
func TestTwoOpt_RejectsInfCandidates_NoError(t *testing.T) {
	I := math.Inf(1)

	a := [][]float64{
		{0, 1, 1.04, 9, 1},
		{1, 0, 1, 1.0, 9},
		{1.04, 1, 0, 1.05, 9},
		{9, 1.0, 1.05, 0, 1},
		{1, 9, 9, 1, 0},
	}
	a[0][2], a[2][0] = I, I
	m := testDense{a: a}

	tour, cost, err := run2opt(m, epsTiny, true, startV, 0)
	if err != nil {
		if !errors.Is(err, tsp.ErrIncompleteGraph) && !errors.Is(err, tsp.ErrDimensionMismatch) {
			t.Fatalf("unexpected error: %v", err)
		}
		return
	}

	after, err := tsp.TourCost(m, tour)
	if err != nil {
		t.Fatalf("TourCost failed: %v", err)
	}
	if round1e9(after) != round1e9(cost) {
		t.Fatalf("cost changed unexpectedly in presence of +Inf candidate: base=%d after=%d",
			round1e9(cost), round1e9(after))
	}
}

func TestTwoOpt_Determinism_Repeat5(t *testing.T) {
	pts := [][2]float64{
		{0, 0}, {1, 0}, {2, 0.05}, {3, 0}, {4, 0}, {5, 0.02},
	}
	m := euclid(pts)

	var tour0 []int
	var cost0 float64

	Repeat(t, 5, func(t *testing.T) {
		tour, cost, err := run2opt(m, epsTiny, true, startV, 0)
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if tour0 == nil {
			tour0 = append([]int(nil), normalizeOpenCycle(tour)...)
			cost0 = cost
			return
		}
		if !slices.Equal(normalizeOpenCycle(tour), tour0) || round1e9(cost) != round1e9(cost0) {
			t.Fatalf("nondeterministic result.\nfirst tour: %v (%d)\n this tour: %v (%d)",
				tour0, round1e9(cost0), tour, round1e9(cost))
		}
	})
}

// TestTwoOpt_TimeLimit_SoftBudget checks that an unreasonably tiny time
// budget either yields ErrTimeLimit or completes without panicking or
// producing an unstable result.
func TestTwoOpt_TimeLimit_SoftBudget(t *testing.T) {
	pts := make([][2]float64, radiusN120)
	var i int
	var theta float64
	for i = 0; i < radiusN120; i++ {
		theta = 2 * math.Pi * float64(i) / float64(radiusN120)
		pts[i] = [2]float64{math.Cos(theta), math.Sin(theta)}
	}
	m := euclid(pts)

	_, _, err := run2opt(m, epsTiny, true, startV, timeTiny)
	if err != nil && !errors.Is(err, tsp.ErrTimeLimit) {
		t.Fatalf("unexpected error under tiny time budget: %v", err)
	}
}
