package manager

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/northfield-robotics/covplanner/bfs"
	"github.com/northfield-robotics/covplanner/builder"
	"github.com/northfield-robotics/covplanner/core"
	"github.com/northfield-robotics/covplanner/dfs"
	"github.com/northfield-robotics/covplanner/matrix"
	"github.com/northfield-robotics/covplanner/planner"
)

// Layout supplies everything build needs to turn a builder-generated
// topology into a production Manager: real 3D positions and, per
// viewpoint, the surface and frontier sample-point indices it observes.
type Layout struct {
	Positions []planner.Point3
	Surface   [][]int
	Frontier  [][]int
}

// idToIndex translates one of builder's topology-specific vertex id
// schemes back to a dense array index (decimal for Path/RandomSparse,
// "r,c" row-major for Grid, per each impl_*.go's documented ID format).
type idToIndex func(id string) (int, error)

func decimalIndex(id string) (int, error) {
	var idx int
	if n, err := fmt.Sscanf(id, "%d", &idx); err != nil || n != 1 {
		return 0, fmt.Errorf("manager: vertex id %q is not a decimal index", id)
	}
	return idx, nil
}

func gridIndex(cols int) idToIndex {
	return func(id string) (int, error) {
		var r, c int
		if n, err := fmt.Sscanf(id, "%d,%d", &r, &c); err != nil || n != 2 {
			return 0, fmt.Errorf("manager: vertex id %q is not a grid coordinate", id)
		}
		return r*cols + c, nil
	}
}

// build assembles a Manager from a builder.Constructor topology and a
// matching Layout. The constructor only determines adjacency (which pairs
// of viewpoints are directly connected); edge weights are always the real
// Euclidean distance between the Layout's positions, since builder's
// weightFn closures have no visibility into per-edge endpoint geometry.
func build(topology builder.Constructor, layout Layout, toIndex idToIndex, bopts ...builder.BuilderOption) (*Manager, error) {
	n := len(layout.Positions)
	if n == 0 {
		return nil, ErrNoViewpoints
	}
	if len(layout.Surface) != n || len(layout.Frontier) != n {
		return nil, ErrDimensionMismatch
	}

	shape, err := builder.BuildGraph(
		[]core.GraphOption{core.WithDirected(false)},
		bopts,
		topology,
	)
	if err != nil {
		return nil, fmt.Errorf("manager: building topology: %w", err)
	}

	if err := checkTopologyConnected(shape, n); err != nil {
		return nil, err
	}

	g := core.NewGraph(core.WithDirected(false), core.WithWeighted())
	for i := 0; i < n; i++ {
		if err := g.AddVertex(fmt.Sprintf("%d", i)); err != nil {
			return nil, fmt.Errorf("manager: AddVertex(%d): %w", i, err)
		}
	}
	for _, e := range shape.Edges() {
		fromIdx, err := toIndex(e.From)
		if err != nil {
			return nil, err
		}
		toIdx, err := toIndex(e.To)
		if err != nil {
			return nil, err
		}
		w := int64(math.Round(planner.Distance(layout.Positions[fromIdx], layout.Positions[toIdx]) * distanceScale))
		if _, err := g.AddEdge(fmt.Sprintf("%d", fromIdx), fmt.Sprintf("%d", toIdx), w); err != nil {
			return nil, fmt.Errorf("manager: AddEdge(%d,%d): %w", fromIdx, toIdx, err)
		}
	}

	if err := checkWeightedGraphConnected(g, n); err != nil {
		return nil, err
	}

	apsp, err := allPairsDistances(g, n)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		graph:     g,
		apsp:      apsp,
		positions: append([]planner.Point3(nil), layout.Positions...),
		surface:   layout.Surface,
		frontier:  layout.Frontier,
		visited:   make([]bool, n),
		selected:  make([]bool, n),
		candidate: make([]bool, n),
		exploring: make([]bool, n),
	}
	for i := range m.candidate {
		m.candidate[i] = true
	}
	return m, nil
}

// checkTopologyConnected verifies that builder's raw, unweighted topology
// graph reaches every one of its n vertices from an arbitrary start vertex.
// It runs before edge weights exist because bfs.BFS refuses weighted graphs
// outright (bfs.ErrWeightedGraph); shape is still plain adjacency at this
// point, so it is the only stage of build where BFS applies at all.
func checkTopologyConnected(shape *core.Graph, n int) error {
	vertices := shape.Vertices()
	if len(vertices) == 0 {
		return ErrDisconnectedTopology
	}
	res, err := bfs.BFS(shape, vertices[0])
	if err != nil {
		return fmt.Errorf("manager: checking topology connectivity: %w", err)
	}
	if len(res.Order) != n {
		return fmt.Errorf("%w: reached %d of %d vertices from %q", ErrDisconnectedTopology, len(res.Order), n, vertices[0])
	}
	return nil
}

// checkWeightedGraphConnected re-verifies connectivity on the final weighted
// graph g, after edges have been copied over from shape and reweighted with
// real Euclidean distances. This catches a mismatch between shape's edge
// list and g's (e.g. an idToIndex bug silently dropping an edge) that the
// earlier topology-only check on shape could not see. Vertex ids on g are
// always the decimal indices "0".."n-1" built above, so a single dfs.DFS
// from "0" must reach all n of them (unlike bfs.BFS, dfs.DFS also accepts
// g's weighted edges).
func checkWeightedGraphConnected(g *core.Graph, n int) error {
	res, err := dfs.DFS(g, "0")
	if err != nil {
		return fmt.Errorf("manager: checking weighted graph connectivity: %w", err)
	}
	if len(res.Visited) != n {
		return fmt.Errorf("%w: reached %d of %d vertices", ErrDisconnectedTopology, len(res.Visited), n)
	}
	return nil
}

// allPairsDistances computes a Floyd-Warshall distance closure over g's n
// vertices, used by ShortestPath as a cheap reachability check before it
// pays for a full Dijkstra run to recover the actual pose sequence.
// A default Dense rejects +Inf in Set, so pairs without a direct edge start
// at math.MaxFloat64; build has already checked that g is connected, so the
// closure replaces every such entry with a finite distance.
func allPairsDistances(g *core.Graph, n int) (*matrix.Dense, error) {
	d, err := matrix.NewZeros(n, n)
	if err != nil {
		return nil, fmt.Errorf("manager: allocating distance matrix: %w", err)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if err := d.Set(i, j, math.MaxFloat64); err != nil {
				return nil, err
			}
		}
	}
	for _, e := range g.Edges() {
		i, err := decimalIndex(e.From)
		if err != nil {
			return nil, err
		}
		j, err := decimalIndex(e.To)
		if err != nil {
			return nil, err
		}
		w := float64(e.Weight)
		if err := d.Set(i, j, w); err != nil {
			return nil, err
		}
		if err := d.Set(j, i, w); err != nil {
			return nil, err
		}
	}
	if err := matrix.APSPInPlace(d); err != nil {
		return nil, fmt.Errorf("manager: APSP: %w", err)
	}
	return d, nil
}

// NewLineManager builds n viewpoints spaced spacing apart along the X axis,
// connected path-wise (viewpoint i reachable only via i-1 and i+1). Every
// viewpoint covers a disjoint pair of surface points and a single frontier
// point, a minimal fixture for the "line of candidates" end-to-end scenario.
func NewLineManager(n int, spacing float64) (*Manager, error) {
	if n <= 0 {
		return nil, ErrNoViewpoints
	}
	positions := make([]planner.Point3, n)
	surface := make([][]int, n)
	frontier := make([][]int, n)
	for i := 0; i < n; i++ {
		positions[i] = planner.Point3{X: float64(i) * spacing}
		surface[i] = []int{2 * i, 2*i + 1}
		frontier[i] = []int{i}
	}
	return build(builder.Path(n), Layout{Positions: positions, Surface: surface, Frontier: frontier}, decimalIndex)
}

// NewGridManager lays out rows*cols viewpoints on an axis-aligned lattice of
// the given spacing, connected 4-directionally (builder.Grid's topology).
func NewGridManager(rows, cols int, spacing float64) (*Manager, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrNoViewpoints
	}
	n := rows * cols
	positions := make([]planner.Point3, n)
	surface := make([][]int, n)
	frontier := make([][]int, n)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			idx := r*cols + c
			positions[idx] = planner.Point3{X: float64(c) * spacing, Y: float64(r) * spacing}
			surface[idx] = []int{2 * idx, 2*idx + 1}
			frontier[idx] = []int{idx}
		}
	}
	return build(builder.Grid(rows, cols), Layout{Positions: positions, Surface: surface, Frontier: frontier}, gridIndex(cols))
}

// NewRandomSparseManager lays out n viewpoints uniformly at random within a
// [0,extent]^2 square and connects them with builder's Erdos-Renyi sampler
// at edge probability p, seeded by rng for reproducible fixtures.
func NewRandomSparseManager(n int, p, extent float64, rng *rand.Rand) (*Manager, error) {
	if n <= 0 {
		return nil, ErrNoViewpoints
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	positions := make([]planner.Point3, n)
	surface := make([][]int, n)
	frontier := make([][]int, n)
	for i := 0; i < n; i++ {
		positions[i] = planner.Point3{X: rng.Float64() * extent, Y: rng.Float64() * extent}
		surface[i] = []int{2 * i, 2*i + 1}
		frontier[i] = []int{i}
	}
	topology := builder.RandomSparse(n, p)
	return build(topology, Layout{Positions: positions, Surface: surface, Frontier: frontier}, decimalIndex, builder.WithRand(rng))
}
