package planner

import (
	"math/rand"
	"time"

	"github.com/northfield-robotics/covplanner/matrix"
	"github.com/northfield-robotics/covplanner/tsp"
)

// intDistMatrix adapts a dense [][]int64 distance matrix — the shape
// computeTour builds per §4.E — to matrix.Matrix, so it can be handed to the
// tsp package's float64-costed solver without duplicating its validation.
type intDistMatrix struct {
	n    int
	data [][]int64
}

func newIntDistMatrix(dist [][]int64) *intDistMatrix {
	return &intDistMatrix{n: len(dist), data: dist}
}

func (m *intDistMatrix) Rows() int { return m.n }
func (m *intDistMatrix) Cols() int { return m.n }

func (m *intDistMatrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0, matrix.ErrOutOfRange
	}
	return float64(m.data[i][j]), nil
}

func (m *intDistMatrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return matrix.ErrOutOfRange
	}
	m.data[i][j] = int64(v)
	return nil
}

func (m *intDistMatrix) Clone() matrix.Matrix {
	cp := make([][]int64, m.n)
	for i := range cp {
		cp[i] = append([]int64(nil), m.data[i]...)
	}
	return &intDistMatrix{n: m.n, data: cp}
}

// twoOptTSPSolver wires the tsp package's nearest-neighbor + 2-opt/2-opt*
// local search up to the planner's TSPSolver contract (§6). It is the
// module's own black-box TSP solver, kept behind the same narrow interface
// a caller's alternative solver would implement.
type twoOptTSPSolver struct {
	rng    *rand.Rand
	solver *tsp.Solver
}

// NewTSPSolver returns a TSPSolver backed by 2-opt local search. rng
// controls the nearest-neighbor seed's tie-breaking and shuffle; nil seeds
// from a non-deterministic source, matching §5's randomness note.
func NewTSPSolver(rng *rand.Rand) TSPSolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &twoOptTSPSolver{rng: rng}
}

func (s *twoOptTSPSolver) Solve(dist [][]int64, depot int) error {
	m := newIntDistMatrix(dist)
	opts := tsp.Options{
		StartVertex:    depot,
		Symmetric:      symmetricInt64(dist),
		Eps:            1e-9,
		TwoOptMaxIters: 500,
		TimeLimit:      200 * time.Millisecond,
	}
	solver, err := tsp.NewSolver(m, opts)
	if err != nil {
		return err
	}
	if err := solver.Solve(s.rng); err != nil {
		return err
	}
	s.solver = solver
	return nil
}

func (s *twoOptTSPSolver) Solution(open bool) ([]int, error) {
	if s.solver == nil {
		return nil, tsp.ErrNoSolution
	}
	tour, _, err := s.solver.Solution(open)
	return tour, err
}

func symmetricInt64(dist [][]int64) bool {
	n := len(dist)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if dist[i][j] != dist[j][i] {
				return false
			}
		}
	}
	return true
}
