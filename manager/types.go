// Package manager provides a reference implementation of the planner's
// ViewpointManager contract: it owns viewpoint geometry, visibility sets,
// visited/selected bookkeeping, and inter-viewpoint shortest paths over a
// weighted core.Graph.
//
// A production deployment would back this with live sensor data; the
// constructors in this package (NewLineManager, NewGridManager,
// NewRandomSparseManager) instead use the builder package to lay out
// deterministic or seeded topologies for tests and the end-to-end
// scenarios the planner exercises.
package manager

import (
	"errors"
	"sync"

	"github.com/northfield-robotics/covplanner/core"
	"github.com/northfield-robotics/covplanner/gridgraph"
	"github.com/northfield-robotics/covplanner/matrix"
	"github.com/northfield-robotics/covplanner/planner"
)

// Sentinel errors returned by this package's constructors and queries.
var (
	// ErrNoViewpoints indicates a manager was asked to build over zero viewpoints.
	ErrNoViewpoints = errors.New("manager: at least one viewpoint is required")

	// ErrDimensionMismatch indicates the caller supplied position/coverage
	// slices whose lengths disagree with the declared viewpoint count.
	ErrDimensionMismatch = errors.New("manager: dimension mismatch between viewpoints and coverage data")

	// ErrUnreachable indicates ShortestPath was asked for a pair with no
	// connecting path in the underlying graph.
	ErrUnreachable = errors.New("manager: no path between requested viewpoints")

	// ErrInvalidCellSize indicates SetHorizonGrid was called with a
	// non-positive cell size.
	ErrInvalidCellSize = errors.New("manager: horizon grid cell size must be positive")

	// ErrDisconnectedTopology indicates a builder-generated topology left
	// at least one viewpoint unreachable from the others, which would make
	// ShortestPath and the all-pairs distance closure silently wrong for
	// that viewpoint instead of failing loudly at construction time.
	ErrDisconnectedTopology = errors.New("manager: viewpoint topology is disconnected")
)

// idStride and idOffset translate between the manager's logical viewpoint
// ids (exposed to the planner) and dense array indices (used internally and
// as core.Graph vertex labels). The offset is deliberately nonzero and the
// stride deliberately not 1 so that id == arrayIndex never holds by
// accident — a manager that collapsed the two addressing modes would mask
// bugs in callers that mix them up.
const (
	idStride = 3
	idOffset = 1000
)

func idForIndex(i int) int     { return idOffset + i*idStride }
func indexForID(id int) (int, bool) {
	if id < idOffset {
		return 0, false
	}
	rem := id - idOffset
	if rem%idStride != 0 {
		return 0, false
	}
	return rem / idStride, true
}

// distanceScale converts a floating-point Euclidean distance into the
// integer edge weight core.Graph requires, preserving two decimal digits of
// precision.
const distanceScale = 100

// Manager is a reference ViewpointManager: a fixed set of viewpoints laid
// out in 3D, each covering a subset of surface and frontier sample points,
// connected by a weighted graph whose edges carry real Euclidean-distance
// costs.
type Manager struct {
	mu sync.RWMutex

	graph *core.Graph
	apsp  *matrix.Dense // precomputed all-pairs distances, nil-edge rows/cols at +Inf

	positions []planner.Point3
	surface   [][]int
	frontier  [][]int

	visited   []bool
	selected  []bool
	candidate []bool
	exploring []bool

	horizonCenter planner.Point3
	horizonRadius float64

	// horizonGrid, when non-nil, backs InLocalPlanningHorizon with a
	// rasterized land/water membership test instead of the sphere-radius
	// check: "land" cells (value >= LandThreshold) mark the horizon's
	// footprint. horizonOrigin and horizonCellSize map a world XY position
	// to a grid cell. Set via SetHorizonGrid; nil means the sphere check
	// (or the always-true default) applies.
	horizonGrid     *gridgraph.GridGraph
	horizonOrigin   planner.Point3
	horizonCellSize float64
}

var _ planner.ViewpointManager = (*Manager)(nil)

// ViewpointCount returns the total number of viewpoints the manager tracks.
func (m *Manager) ViewpointCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.positions)
}
