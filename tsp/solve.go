package tsp

import (
	"math/rand"

	"github.com/northfield-robotics/covplanner/matrix"
)

// Solver builds a fixed-endpoint tour over a distance matrix and keeps the
// last accepted solution so callers can read it back in either an open or
// closed form.
//
// A Solver is not safe for concurrent use; the planner constructs one per
// planning cycle.
type Solver struct {
	dist  matrix.Matrix
	opts  Options
	n     int
	tour  []int // closed form, len n+1, or nil before a successful Solve
	cost  float64
	ready bool
}

// NewSolver validates dist against opts and returns a Solver ready to Solve.
//
// dist must be square and non-negative; if opts.Symmetric is true, dist must
// also be symmetric within a small float tolerance. opts.StartVertex must be
// a valid row/column index.
func NewSolver(dist matrix.Matrix, opts Options) (*Solver, error) {
	n, err := validateDistMatrix(dist)
	if err != nil {
		return nil, err
	}
	if err = validateStartVertex(opts.StartVertex, n); err != nil {
		return nil, err
	}
	if opts.Eps < 0 {
		return nil, ErrDimensionMismatch
	}
	if opts.Symmetric {
		if err = mustEnforceSymmetry(dist, n); err != nil {
			return nil, err
		}
	}

	return &Solver{dist: dist, opts: opts, n: n}, nil
}

// Solve constructs an initial tour with a nearest-neighbor seed rooted at
// opts.StartVertex, then refines it with TwoOpt. rng drives tie-breaking
// among equidistant neighbors during the seed pass; pass a deterministic
// *rand.Rand for reproducible tours.
//
// On success, Solution can be called to read back the result. On failure
// the Solver keeps whatever solution it already had (if any).
func (s *Solver) Solve(rng *rand.Rand) error {
	if s.n == 1 {
		s.tour = []int{s.opts.StartVertex, s.opts.StartVertex}
		s.cost = 0
		s.ready = true
		return nil
	}

	seed, err := nearestNeighborTour(s.dist, s.n, s.opts.StartVertex, rng)
	if err != nil {
		return err
	}

	refined, cost, err := TwoOpt(s.dist, seed, s.opts)
	if err != nil {
		return err
	}

	s.tour = refined
	s.cost = cost
	s.ready = true
	return nil
}

// Solution returns the last accepted tour and its cost.
//
// When open is false, the closed cycle is returned as-is: StartVertex at
// both ends, length n+1. When open is true, the trailing StartVertex is
// dropped and the caller gets the n-vertex visiting order instead; dropping
// any dummy/depot placeholder row before presenting the order to a path
// consumer is the caller's responsibility, since only the caller knows
// which row (if any) stands in for a free end.
func (s *Solver) Solution(open bool) ([]int, float64, error) {
	if !s.ready {
		return nil, 0, ErrNoSolution
	}
	if !open {
		return CopyTour(s.tour), s.cost, nil
	}
	return CopyTour(s.tour[:len(s.tour)-1]), s.cost, nil
}

// nearestNeighborTour builds a closed tour by repeatedly walking to the
// nearest unvisited vertex, starting and ending at start. Ties among
// equidistant candidates are broken by rng when non-nil, otherwise by
// lowest index.
//
// Complexity: O(n^2) time, O(n) space.
func nearestNeighborTour(dist matrix.Matrix, n, start int, rng *rand.Rand) ([]int, error) {
	visited := make([]bool, n)
	tour := make([]int, 0, n+1)
	tour = append(tour, start)
	visited[start] = true

	order, err := permRange(n, rng)
	if err != nil {
		return nil, err
	}

	cur := start
	var step int
	for step = 1; step < n; step++ {
		best := -1
		bestDist := 0.0
		ties := 0

		var (
			oi int
			j  int
			w  float64
		)
		for oi = 0; oi < n; oi++ {
			j = order[oi]
			if visited[j] {
				continue
			}
			w, _ = dist.At(cur, j)
			switch {
			case best == -1 || w < bestDist:
				best = j
				bestDist = w
				ties = 1
			case w == bestDist:
				ties++
				if rng != nil && rng.Intn(ties) == 0 {
					best = j
				}
			}
		}
		if best == -1 {
			return nil, ErrIncompleteGraph
		}
		tour = append(tour, best)
		visited[best] = true
		cur = best
	}
	tour = append(tour, start)

	return tour, nil
}
