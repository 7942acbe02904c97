// Package covplanner computes a short-horizon coverage tour for a mobile
// robot: given a set of candidate viewpoints and the frontier/surface
// cells they see, it greedily selects a covering subset, sequences it
// into a single local path anchored on the robot's current pose and the
// incoming global path, and hands the result back to the caller.
//
// Under the hood, everything is organized under focused subpackages:
//
//	planner/  — orchestration: candidate selection, anchors, local path assembly
//	selector/ — randomized greedy max-coverage viewpoint selection
//	manager/  — reference ViewpointManager (candidate graph + shortest paths)
//	tsp/      — fixed-endpoint tour construction (2-opt local search)
//	config/   — tunables and their defaults
//	core/     — graph storage shared by the reference manager
//	dijkstra/ — shortest paths over the candidate graph
//	matrix/   — dense distance matrices, all-pairs shortest paths
//	gridgraph/ — grid-backed local planning horizon lookups
//	builder/  — synthetic candidate layouts for tests and examples
//	dtw/      — path-continuity diagnostic between consecutive cycles
//	bfs/, dfs/ — traversal primitives used by the reference manager's graph
//
// See planner.SolveLocalCoverageProblem for the package's single entry
// point, and SPEC_FULL.md in the repository root for the full contract.
package covplanner
