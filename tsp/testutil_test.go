package tsp_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/northfield-robotics/covplanner/matrix"
)

// Shared fixtures and small matrix.Matrix implementations used across this
// package's tests.

const (
	startV    = 0
	epsTiny   = 1e-9
	seedDet   = int64(12345)
	radiusN120 = 120
	timeTiny  = 1 // nanosecond; expires almost immediately
)

// Repeat runs fn n times as subtests, named "repN", to catch flaky
// nondeterminism in RNG-driven code paths.
func Repeat(t *testing.T, n int, fn func(t *testing.T)) {
	t.Helper()
	for i := 0; i < n; i++ {
		t.Run(rep(i), func(t *testing.T) { fn(t) })
	}
}

func rep(i int) string {
	return "rep" + string(rune('0'+i%10))
}

// testDense is a minimal matrix.Matrix backed by a plain [][]float64, used to
// exercise the generic (non-*matrix.Dense) code path in TourCost/TwoOpt.
type testDense struct{ a [][]float64 }

func (m testDense) Rows() int { return len(m.a) }
func (m testDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}
	return len(m.a[0])
}
func (m testDense) At(i, j int) (float64, error) {
	if i < 0 || i >= len(m.a) || j < 0 || j >= len(m.a[i]) {
		return 0, matrix.ErrIndexOutOfBounds
	}
	return m.a[i][j], nil
}
func (m testDense) Set(i, j int, v float64) error {
	if i < 0 || i >= len(m.a) || j < 0 || j >= len(m.a[i]) {
		return matrix.ErrIndexOutOfBounds
	}
	m.a[i][j] = v
	return nil
}
func (m testDense) Clone() matrix.Matrix {
	return testDense{a: clone2D(m.a)}
}

// altDense is a second matrix.Matrix type (backed by [][]float64 like
// testDense, but a distinct type) used to check that cost computation agrees
// across implementations.
type altDense struct{ a [][]float64 }

func (m altDense) Rows() int { return len(m.a) }
func (m altDense) Cols() int {
	if len(m.a) == 0 {
		return 0
	}
	return len(m.a[0])
}
func (m altDense) At(i, j int) (float64, error) {
	if i < 0 || i >= len(m.a) || j < 0 || j >= len(m.a[i]) {
		return 0, matrix.ErrIndexOutOfBounds
	}
	return m.a[i][j], nil
}
func (m altDense) Set(i, j int, v float64) error {
	if i < 0 || i >= len(m.a) || j < 0 || j >= len(m.a[i]) {
		return matrix.ErrIndexOutOfBounds
	}
	m.a[i][j] = v
	return nil
}
func (m altDense) Clone() matrix.Matrix {
	return altDense{a: clone2D(m.a)}
}

// euclid builds a symmetric Euclidean distance matrix over pts.
func euclid(pts [][2]float64) matrix.Matrix {
	n := len(pts)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			a[i][j] = math.Sqrt(dx*dx + dy*dy)
		}
	}
	return testDense{a: a}
}

// euclidAsym builds an asymmetric distance matrix: Euclidean distance plus a
// directional penalty bias applied to i→j when i<j, making the matrix a
// genuine ATSP instance.
func euclidAsym(pts [][2]float64, bias float64) matrix.Matrix {
	n := len(pts)
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
	}
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			dx := pts[i][0] - pts[j][0]
			dy := pts[i][1] - pts[j][1]
			d := math.Sqrt(dx*dx + dy*dy)
			if i < j {
				d += bias
			}
			a[i][j] = d
		}
	}
	return testDense{a: a}
}

// normalizeOpenCycle rotates a closed or open tour so it starts at vertex 0,
// dropping the closing vertex if present.
func normalizeOpenCycle(tour []int) []int {
	if len(tour) == 0 {
		return nil
	}
	body := tour
	if tour[0] == tour[len(tour)-1] {
		body = tour[:len(tour)-1]
	}
	idx := -1
	for i, v := range body {
		if v == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return append([]int(nil), body...)
	}
	out := make([]int, len(body))
	copy(out, body[idx:])
	copy(out[len(body)-idx:], body[:idx])
	return out
}

// rotateToStart0 is normalizeOpenCycle taking a *testing.T (marked as a
// helper), kept as a distinct name at call sites for readability.
func rotateToStart0(t *testing.T, tour []int) []int {
	t.Helper()
	return normalizeOpenCycle(tour)
}

func clone2D(a [][]float64) [][]float64 {
	cp := make([][]float64, len(a))
	for i := range a {
		cp[i] = append([]float64(nil), a[i]...)
	}
	return cp
}

// detRNG returns a fresh deterministic RNG seeded identically on every call.
func detRNG() *rand.Rand {
	return rand.New(rand.NewSource(seedDet))
}
