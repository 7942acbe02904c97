// Package planner computes a short-horizon coverage tour for a mobile
// robot: given a set of candidate viewpoints and the frontier/surface cells
// they see, it greedily selects a covering subset, sequences it into a
// single local path anchored on the robot's current pose and the incoming
// global path, and hands the result back to the caller.
//
// The viewpoint manager and the TSP solver are external collaborators,
// consumed through the narrow interfaces declared in this file (ViewpointManager,
// TSPSolver). See SolveLocalCoverageProblem for the package's entry point.
package planner

import (
	"errors"
	"math"
)

// Sentinel errors returned by the planner.
var (
	// ErrNilManager indicates a nil ViewpointManager was supplied to the planner.
	ErrNilManager = errors.New("planner: viewpoint manager is nil")

	// ErrNilGlobalPath indicates a nil GlobalPath was supplied where a non-nil
	// (possibly empty) one was required.
	ErrNilGlobalPath = errors.New("planner: global path is nil")

	// ErrOutOfRangeIndex names the fatal bitmap bounds-assertion failure of
	// §7.2. No function in this package returns it or panics with it; the
	// bounds assertion itself is selector's mustInRange, which panics with
	// selector.ErrOutOfRangeIndex.
	ErrOutOfRangeIndex = errors.New("planner: bitmap index out of range")
)

// Point3 is a position in the local planning frame.
type Point3 struct {
	X, Y, Z float64
}

// Sub returns a-b componentwise.
func (a Point3) Sub(b Point3) Point3 {
	return Point3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

// Norm returns the Euclidean length of the vector.
func (a Point3) Norm() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b Point3) float64 {
	return a.Sub(b).Norm()
}

// NodeType tags the role a LocalPath node plays in the emitted tour.
type NodeType int

const (
	// Robot is the robot's current pose, always the first viewpoint-bearing
	// anchor in the tour.
	Robot NodeType = iota
	// LocalPathStart is the path_start anchor: where the incoming global
	// path enters the local horizon.
	LocalPathStart
	// LocalPathEnd is the path_end anchor: where the outgoing global path
	// resumes.
	LocalPathEnd
	// LocalViewpoint is an ordinary selected viewpoint (or the lookahead
	// anchor, re-classified when its gain clears the threshold).
	LocalViewpoint
	// LookaheadPoint is the lookahead anchor when it does not clear the gain
	// threshold for re-classification as a LocalViewpoint.
	LookaheadPoint
	// LocalViaPoint is an interior pose of the shortest path between two
	// consecutive tour nodes; it carries no viewpoint identity.
	LocalViaPoint
)

// String renders the node type for logging and test failure messages.
func (t NodeType) String() string {
	switch t {
	case Robot:
		return "ROBOT"
	case LocalPathStart:
		return "LOCAL_PATH_START"
	case LocalPathEnd:
		return "LOCAL_PATH_END"
	case LocalViewpoint:
		return "LOCAL_VIEWPOINT"
	case LookaheadPoint:
		return "LOOKAHEAD_POINT"
	case LocalViaPoint:
		return "LOCAL_VIA_POINT"
	default:
		return "UNKNOWN"
	}
}

// PathNode is a single typed node of a LocalPath.
type PathNode struct {
	Type NodeType
	Pos  Point3
	// ViewpointID is the source viewpoint id for viewpoint-typed nodes, or
	// -1 for LocalViaPoint nodes (invariant, §8).
	ViewpointID int
}

// LocalPath is the planner's produced output: an ordered sequence of typed
// nodes connecting the chosen viewpoints via the manager's shortest paths.
type LocalPath struct {
	Nodes []PathNode
}

// Closed reports whether the path's first and last node coincide (the
// path_start == path_end case, §3 invariant 5).
func (p LocalPath) Closed() bool {
	if len(p.Nodes) < 2 {
		return false
	}
	first, last := p.Nodes[0], p.Nodes[len(p.Nodes)-1]
	return first.ViewpointID == last.ViewpointID && first.ViewpointID >= 0
}

// Length sums the Euclidean distance between consecutive nodes.
func (p LocalPath) Length() float64 {
	var total float64
	for i := 1; i < len(p.Nodes); i++ {
		total += Distance(p.Nodes[i-1].Pos, p.Nodes[i].Pos)
	}
	return total
}

// GlobalPathNodeType tags nodes of the incoming/outgoing global path.
type GlobalPathNodeType int

const (
	GlobalViewpoint GlobalPathNodeType = iota
	Home
	GlobalLocalViewpoint
	GlobalOther
)

// GlobalPathNode is one node of the coarse global path that enters and
// exits the local region.
type GlobalPathNode struct {
	Pos  Point3
	Type GlobalPathNodeType
}

// GlobalPath is the ordered node list consumed by the anchor resolver
// (§4.D) to find path_start and path_end.
type GlobalPath struct {
	Nodes []GlobalPathNode
}

// Reverse returns a new GlobalPath with nodes in reverse order, used by the
// anchor resolver to walk the path from the back when resolving path_end.
func (p GlobalPath) Reverse() GlobalPath {
	out := GlobalPath{Nodes: make([]GlobalPathNode, len(p.Nodes))}
	n := len(p.Nodes)
	for i, node := range p.Nodes {
		out.Nodes[n-1-i] = node
	}
	return out
}

// CycleMemory is the planner's only long-lived cross-call state: the
// ordered viewpoint-id list the previous cycle's winning tour produced, and
// its array-index mirror.
type CycleMemory struct {
	IDs     []int
	ArrayInd []int
}

// SelectionRole tags a viewpoint id by the anchor role it played in the last
// winning tour (or RoleOther), exposed via Planner.LastSelection so a host
// process can build its own visualization.
type SelectionRole int

const (
	RoleOther SelectionRole = iota
	RoleRobot
	RoleStart
	RoleEnd
	RoleLookahead
)

// SelectedViewpoint is one entry of Planner.LastSelection's report.
type SelectedViewpoint struct {
	ID   int
	Pos  Point3
	Role SelectionRole
}

// Logger is the minimal injectable logging surface the planner writes
// debug diagnostics to; it defaults to a no-op so a host can wire in its
// own structured logger without this package choosing one for it.
type Logger interface {
	Debugf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}

// ViewpointManager is the narrow query interface the planner consumes
// (§6's "viewpoint manager — consumed contract"). It owns viewpoint
// geometry, visibility sets, visited flags, inter-viewpoint shortest
// paths, and the candidate predicate; the planner never constructs one
// itself.
type ViewpointManager interface {
	// CandidateIDs returns every viewpoint id the manager currently
	// considers for planning, in an implementation-defined but stable order.
	CandidateIDs() []int

	// NearestCandidate returns the candidate nearest to pos, or a negative
	// id if no candidate exists.
	NearestCandidate(pos Point3) int

	// InLocalPlanningHorizon reports whether pos lies within the local
	// planning region the manager is currently tracking.
	InLocalPlanningHorizon(pos Point3) bool

	// InRange reports whether id is a valid, resolvable viewpoint handle.
	InRange(id int) bool

	// IsCandidate reports the candidate predicate for ref, addressed either
	// by array index (byArray=true) or by logical id.
	IsCandidate(ref int, byArray bool) bool

	// Visited reports whether ref has already been visited.
	Visited(ref int, byArray bool) bool

	// InExploringCell reports whether id lies in a cell currently flagged
	// worth exploring.
	InExploringCell(id int) bool

	// ArrayIndex converts a logical id to its dense array index, or -1 if
	// id is out of range.
	ArrayIndex(id int) int

	// ID converts a dense array index back to its logical id, or -1 if
	// arrayInd is out of range.
	ID(arrayInd int) int

	// CoveredSurfacePoints returns the surface point indices ref's
	// viewpoint would observe.
	CoveredSurfacePoints(ref int, byArray bool) []int

	// CoveredFrontierPoints returns the frontier point indices ref's
	// viewpoint would observe.
	CoveredFrontierPoints(ref int, byArray bool) []int

	// SurfaceGain returns the count of ref's surface points not yet marked
	// true in bitmap.
	SurfaceGain(bitmap []bool, ref int, byArray bool) int

	// FrontierGain returns the count of ref's frontier points not yet
	// marked true in bitmap.
	FrontierGain(bitmap []bool, ref int, byArray bool) int

	// ShortestPath returns the pose sequence of the shortest path from a to
	// b, inclusive of both endpoints. Returns an error if no path exists.
	ShortestPath(a, b int) ([]Point3, error)

	// Position returns the 3D position of viewpoint id.
	Position(id int) Point3

	// SetSelected sets the manager's per-viewpoint "selected" flag.
	SetSelected(ref int, value bool, byArray bool)

	// ViewpointCount returns the total number of viewpoints the manager
	// tracks (not only candidates).
	ViewpointCount() int
}

// TSPSolver is the black-box tour builder consumed by computeTour (§6's "TSP
// solver — consumed contract"): given a distance matrix and a depot index,
// it returns a Hamiltonian tour, optionally broken open at a dummy node.
type TSPSolver interface {
	// Solve computes a tour over the distance matrix dist (dist[i][j] is
	// the integer cost of the edge i->j) starting and ending at depot.
	Solve(dist [][]int64, depot int) error

	// Solution returns the most recently solved tour. If open is true and
	// the instance was constructed with a break-point dummy, the tour is
	// returned broken open at that dummy; otherwise it is returned closed.
	Solution(open bool) ([]int, error)
}
