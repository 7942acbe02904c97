package planner

// anchors holds the four obligatory viewpoint ids resolved once per cycle
// (§3, §4.D). All four are always present in the final selection regardless
// of their gains (§3 invariant 3).
type anchors struct {
	Robot     int
	Lookahead int
	PathStart int
	PathEnd   int
}

// ids returns the four anchor ids as a slice, in the fixed robot / lookahead
// / start / end order used throughout the tour builder.
func (a anchors) ids() []int {
	return []int{a.Robot, a.Lookahead, a.PathStart, a.PathEnd}
}

// resolveAnchors implements §4.D. robotPos and lookaheadPos are the robot's
// current and short-horizon target positions; lookaheadUpdate gates whether
// the lookahead anchor is recomputed from lookaheadPos at all. global is the
// coarse incoming/outgoing global path the local path must hand off to.
func resolveAnchors(mgr ViewpointManager, robotPos, lookaheadPos Point3, lookaheadUpdate bool, global GlobalPath) anchors {
	robot := mgr.NearestCandidate(robotPos)

	lookahead := robot
	if lookaheadUpdate {
		if cand := mgr.NearestCandidate(lookaheadPos); cand >= 0 && mgr.InRange(cand) {
			lookahead = cand
		}
	}

	pathStart := walkToLocalBoundary(mgr, global, robot)
	pathEnd := walkToLocalBoundary(mgr, global.Reverse(), robot)

	return anchors{Robot: robot, Lookahead: lookahead, PathStart: pathStart, PathEnd: pathEnd}
}

// walkToLocalBoundary walks path from the front while nodes remain local
// (inside the manager's planning horizon and not a GLOBAL_VIEWPOINT/HOME
// node), stopping at the first node that is one of those types or that
// leaves the horizon. It returns the nearest candidate to the last walked
// position, or fallback if the first node is already non-local (§4.D).
func walkToLocalBoundary(mgr ViewpointManager, path GlobalPath, fallback int) int {
	if len(path.Nodes) == 0 {
		return fallback
	}

	first := path.Nodes[0]
	if isGlobalBoundaryType(first.Type) || !mgr.InLocalPlanningHorizon(first.Pos) {
		return fallback
	}

	last := first
	for _, node := range path.Nodes {
		if isGlobalBoundaryType(node.Type) || !mgr.InLocalPlanningHorizon(node.Pos) {
			break
		}
		last = node
	}

	if cand := mgr.NearestCandidate(last.Pos); cand >= 0 {
		return cand
	}
	return fallback
}

func isGlobalBoundaryType(t GlobalPathNodeType) bool {
	return t == GlobalViewpoint || t == Home
}
