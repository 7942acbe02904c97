package planner

import "math"

const (
	// distScale is the integer scaling factor applied to real-valued path
	// lengths before handing them to the (integer-only) TSP solver (§4.E,
	// §9 "integer distance scaling"). Load-bearing: must match the solver's
	// expectation exactly, or tour costs silently drift.
	distScale = 10

	// sentinelDist is the prohibitive edge cost used for dummy-node
	// off-pair edges and for manager path lookups that fail (§7.3, §9).
	sentinelDist = 9999
)

// buildDistanceMatrix computes the symmetric integer distance matrix over
// ids (§4.E): entry [i][j] is floor(distScale * shortest-path length). A
// missing manager path is treated as sentinelDist rather than dropping the
// viewpoint, matching the source's unconditional-use behavior (§4.E, §7.3).
func buildDistanceMatrix(mgr ViewpointManager, ids []int) [][]int64 {
	n := len(ids)
	d := make([][]int64, n)
	for i := range d {
		d[i] = make([]int64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := int64(sentinelDist)
			if poses, err := mgr.ShortestPath(ids[i], ids[j]); err == nil && len(poses) > 0 {
				w = int64(math.Floor(distScale * pathLength(poses)))
			}
			d[i][j], d[j][i] = w, w
		}
	}
	return d
}

func pathLength(poses []Point3) float64 {
	var total float64
	for i := 1; i < len(poses); i++ {
		total += Distance(poses[i-1], poses[i])
	}
	return total
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// withDummies appends 0, 1, or 2 dummy nodes to base per §4.E's dummy-node
// construction rules, keyed on whether the (S,E) and (R,L) anchor pairs are
// degenerate (equal indices). It reports whether a start/end dummy (D_SE,
// or the lone dummy when only that pair is non-degenerate) was added, since
// that — not the robot/lookahead dummy — decides open-vs-closed solution
// retrieval (§4.E "Solve").
func withDummies(base [][]int64, s, e, r, l int) (dist [][]int64, hasStartEndDummy bool) {
	n := len(base)
	type pair struct{ a, b int }
	var pairs []pair
	if s != e {
		pairs = append(pairs, pair{s, e})
	}
	if r != l {
		pairs = append(pairs, pair{r, l})
	}
	if len(pairs) == 0 {
		return base, false
	}

	m := n + len(pairs)
	out := make([][]int64, m)
	for i := range out {
		out[i] = make([]int64, m)
	}
	for i := 0; i < n; i++ {
		copy(out[i][:n], base[i])
	}

	for k, p := range pairs {
		dummyIdx := n + k
		for i := 0; i < n; i++ {
			w := int64(sentinelDist)
			if i == p.a || i == p.b {
				w = 0
			}
			out[i][dummyIdx], out[dummyIdx][i] = w, w
		}
		if p.a == s && p.b == e {
			hasStartEndDummy = true
		}
	}
	if len(pairs) == 2 {
		out[n][n+1], out[n+1][n] = sentinelDist, sentinelDist
	}
	return out, hasStartEndDummy
}

// computeTour implements §4.E's distance-matrix, dummy-node, and solve
// stages: it builds the symmetric distance matrix over ids (which must
// already include the four anchors, deduplicated), adds dummy anchor
// nodes, invokes solver, and post-processes the result into an ordered
// viewpoint-id list (dummies dropped, closed if path_start == path_end and
// the tour holds more than one viewpoint).
func computeTour(mgr ViewpointManager, solver TSPSolver, ids []int, a anchors) ([]int, error) {
	n := len(ids)
	if n == 0 {
		return nil, nil
	}

	s, e, r, l := indexOf(ids, a.PathStart), indexOf(ids, a.PathEnd), indexOf(ids, a.Robot), indexOf(ids, a.Lookahead)
	if s < 0 {
		s = 0
	}
	if e < 0 {
		e = s
	}
	if r < 0 {
		r = s
	}
	if l < 0 {
		l = r
	}

	base := buildDistanceMatrix(mgr, ids)
	dist, hasStartEndDummy := withDummies(base, s, e, r, l)

	if err := solver.Solve(dist, s); err != nil {
		return nil, err
	}
	tour, err := solver.Solution(hasStartEndDummy)
	if err != nil {
		return nil, err
	}

	ordered := make([]int, 0, n)
	for _, idx := range tour {
		if idx < 0 || idx >= n {
			continue
		}
		ordered = append(ordered, ids[idx])
	}
	if len(ordered) == 0 {
		return nil, nil
	}
	if a.PathStart == a.PathEnd && len(ordered) > 1 {
		ordered = append(ordered, ordered[0])
	}
	return ordered, nil
}

// solveTSP runs computeTour followed by assembleLocalPath, the full §4.E
// pipeline in one call. The orchestrator calls the two stages separately
// instead (to attribute timing telemetry independently), and nothing else
// in the module calls this wrapper.
func solveTSP(
	mgr ViewpointManager,
	solver TSPSolver,
	ids []int,
	a anchors,
	surfaceBitmap, frontierBitmap []bool,
	minAddPointNum, minAddFrontierPointNum int,
	logger Logger,
) (LocalPath, []int, error) {
	ordered, err := computeTour(mgr, solver, ids, a)
	if err != nil || len(ordered) == 0 {
		return LocalPath{}, nil, err
	}
	path := assembleLocalPath(mgr, ordered, a, surfaceBitmap, frontierBitmap, minAddPointNum, minAddFrontierPointNum, logger)
	return path, ordered, nil
}

// assembleLocalPath implements §4.E's "LocalPath assembly" walk. Every node
// except the final one is typed via nodeTypeForCur (full lookahead-gain
// reclassification); the final node alone is typed via nodeTypeForNext
// (simplified, no gain recheck) — the asymmetry §9 says is preserved
// deliberately.
func assembleLocalPath(
	mgr ViewpointManager,
	ids []int,
	a anchors,
	surfaceBitmap, frontierBitmap []bool,
	minAddPointNum, minAddFrontierPointNum int,
	logger Logger,
) LocalPath {
	if len(ids) == 0 {
		return LocalPath{}
	}
	if len(ids) == 1 {
		id := ids[0]
		return LocalPath{Nodes: []PathNode{{
			Type:        nodeTypeForCur(mgr, id, a, surfaceBitmap, frontierBitmap, minAddPointNum, minAddFrontierPointNum),
			Pos:         mgr.Position(id),
			ViewpointID: id,
		}}}
	}

	var nodes []PathNode
	for i := 0; i < len(ids)-1; i++ {
		cur, next := ids[i], ids[i+1]
		nodes = append(nodes, PathNode{
			Type:        nodeTypeForCur(mgr, cur, a, surfaceBitmap, frontierBitmap, minAddPointNum, minAddFrontierPointNum),
			Pos:         mgr.Position(cur),
			ViewpointID: cur,
		})

		poses, err := mgr.ShortestPath(cur, next)
		switch {
		case err != nil:
			if logger != nil {
				logger.Debugf("planner: no shortest path %d->%d: %v", cur, next, err)
			}
		case len(poses) > 2:
			for _, p := range poses[1 : len(poses)-1] {
				nodes = append(nodes, PathNode{Type: LocalViaPoint, Pos: p, ViewpointID: -1})
			}
		}

		if i == len(ids)-2 {
			nodes = append(nodes, PathNode{
				Type:        nodeTypeForNext(next, a),
				Pos:         mgr.Position(next),
				ViewpointID: next,
			})
		}
	}
	return LocalPath{Nodes: nodes}
}

func nodeTypeForCur(mgr ViewpointManager, id int, a anchors, surfaceBitmap, frontierBitmap []bool, minAddPointNum, minAddFrontierPointNum int) NodeType {
	switch {
	case id == a.Robot:
		return Robot
	case id == a.Lookahead:
		if mgr.SurfaceGain(surfaceBitmap, id, false) > minAddPointNum || mgr.FrontierGain(frontierBitmap, id, false) > minAddFrontierPointNum {
			return LocalViewpoint
		}
		return LookaheadPoint
	case id == a.PathStart:
		return LocalPathStart
	case id == a.PathEnd:
		return LocalPathEnd
	default:
		return LocalViewpoint
	}
}

// nodeTypeForNext is nodeTypeForCur's lookahead-gain-blind twin, used only
// for the very last node of a walk (§4.E, §9 preserved asymmetry).
func nodeTypeForNext(id int, a anchors) NodeType {
	switch {
	case id == a.Robot:
		return Robot
	case id == a.Lookahead:
		return LookaheadPoint
	case id == a.PathStart:
		return LocalPathStart
	case id == a.PathEnd:
		return LocalPathEnd
	default:
		return LocalViewpoint
	}
}
