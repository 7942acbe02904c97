package planner

import (
	"math/rand"
	"time"

	"github.com/northfield-robotics/covplanner/selector"
)

// Config holds the four scalar knobs named in §6 as the subsystem's
// externally configured parameters.
type Config struct {
	MinAddPointNum              int
	MinAddFrontierPointNum      int
	GreedyViewPointSampleRange  int
	LocalPathOptimizationItrMax int
}

// CycleInput bundles everything one planning tick supplies beyond the
// manager and solver already held by the Planner (§4.F).
type CycleInput struct {
	RobotPos             Point3
	LookaheadPos         Point3
	LookaheadPointUpdate bool
	FrontierModeEnabled  bool
	GlobalPath           GlobalPath

	// UncoveredSurfacePointNum and UncoveredFrontierPointNum size the
	// per-cycle bitmaps (§3 invariant 1).
	UncoveredSurfacePointNum  int
	UncoveredFrontierPointNum int
}

// Planner is the package's stateful entry point: it owns the viewpoint
// manager handle, the TSP solver factory, the PRNG, and the only long-lived
// state this subsystem carries, CycleMemory (§9 "global mutable state").
type Planner struct {
	mgr       ViewpointManager
	newSolver func() TSPSolver
	rng       *rand.Rand
	cfg       Config
	logger    Logger

	memory        CycleMemory
	lastSelection []SelectedViewpoint

	findPathRuntime          time.Duration
	viewpointSamplingRuntime time.Duration
	tspRuntime               time.Duration
}

// Option configures a Planner at construction time.
type Option func(*Planner)

// WithLogger injects a structured logger; the default is a no-op.
func WithLogger(l Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// WithRand overrides the PRNG source, letting tests inject a deterministic
// seed (§5 "Randomness", §9).
func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) { p.rng = rng }
}

// NewPlanner constructs a Planner bound to mgr and a TSP solver factory
// (invoked fresh for every computeTour call, since a solver instance holds
// per-solve state). mgr and newSolver must be non-nil.
func NewPlanner(mgr ViewpointManager, newSolver func() TSPSolver, cfg Config, opts ...Option) (*Planner, error) {
	if mgr == nil {
		return nil, ErrNilManager
	}
	p := &Planner{
		mgr:       mgr,
		newSolver: newSolver,
		cfg:       cfg,
		logger:    noopLogger{},
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// FindPathRuntime, ViewpointSamplingRuntime, and TSPRuntime expose the three
// timing accumulators (§5), reset at the start of every
// SolveLocalCoverageProblem call.
func (p *Planner) FindPathRuntime() time.Duration          { return p.findPathRuntime }
func (p *Planner) ViewpointSamplingRuntime() time.Duration { return p.viewpointSamplingRuntime }
func (p *Planner) TSPRuntime() time.Duration               { return p.tspRuntime }

// LastSelection reports the previous cycle's winning tour, each id tagged
// with the anchor role it played (or RoleOther), for a host process's own
// visualization (§9).
func (p *Planner) LastSelection() []SelectedViewpoint {
	return append([]SelectedViewpoint(nil), p.lastSelection...)
}

func (p *Planner) track(accum *time.Duration, fn func()) {
	start := time.Now()
	fn()
	*accum += time.Since(start)
}

// SolveLocalCoverageProblem runs one planning cycle end to end (§4.F).
func (p *Planner) SolveLocalCoverageProblem(in CycleInput) (LocalPath, bool, error) {
	p.findPathRuntime, p.viewpointSamplingRuntime, p.tspRuntime = 0, 0, 0

	if len(p.mgr.CandidateIDs()) == 0 {
		p.memory = CycleMemory{}
		p.lastSelection = nil
		return LocalPath{}, true, nil
	}

	a := resolveAnchors(p.mgr, in.RobotPos, in.LookaheadPos, in.LookaheadPointUpdate, in.GlobalPath)

	surfaceBM := selector.NewCoverageBitmap(in.UncoveredSurfacePointNum)
	frontierBM := selector.NewCoverageBitmap(in.UncoveredFrontierPointNum)
	surfaceBitmap := surfaceBM.Bits()
	frontierBitmap := frontierBM.Bits()

	reused := p.reuseFromMemory(surfaceBitmap, frontierBitmap, in.FrontierModeEnabled)

	preSelected := map[int]bool{}
	for _, id := range reused {
		preSelected[id] = true
	}
	for _, id := range a.ids() {
		preSelected[id] = true
	}
	for id := range preSelected {
		markCoverage(p.mgr, id, surfaceBM, frontierBM)
	}

	surfaceQueue, frontierQueue := selector.EnqueueCandidates(
		p.mgr, surfaceBitmap, frontierBitmap, preSelected,
		p.cfg.MinAddPointNum, p.cfg.MinAddFrontierPointNum, in.FrontierModeEnabled,
	)

	var (
		winner       LocalPath
		winnerIDs    []int
		winnerLength = -1.0
		complete     bool
	)

	if len(surfaceQueue) > 0 && surfaceQueue[0].Gain > p.cfg.MinAddPointNum {
		itr := p.cfg.LocalPathOptimizationItrMax
		if itr < 1 {
			itr = 1
		}
		for i := 0; i < itr; i++ {
			surfaceSelected, updatedSurfaceBitmap := p.greedySelectSurface(surfaceQueue, surfaceBitmap)

			frontierSelected, _ := p.greedySelectFrontier(
				frontierQueue, frontierBitmap, updatedSurfaceBitmap, surfaceSelected, in.FrontierModeEnabled,
			)

			combined := dedupeInts(concatIDs(reused, a.ids(), surfaceSelected, frontierSelected))
			path, ids, length, err := p.solveAndAssemble(combined, a, updatedSurfaceBitmap, frontierBitmap)
			if err != nil {
				continue
			}
			if winnerLength < 0 || length < winnerLength {
				winner, winnerIDs, winnerLength = path, ids, length
			}
		}
		if winnerLength < 0 {
			return LocalPath{}, false, nil
		}
	} else {
		frontierSelected, _ := p.greedySelectFrontier(
			frontierQueue, frontierBitmap, surfaceBitmap, nil, in.FrontierModeEnabled,
		)

		if len(frontierSelected) == 0 && len(reused) == 0 {
			complete = true
		}

		combined := dedupeInts(concatIDs(reused, a.ids(), frontierSelected))
		path, ids, _, err := p.solveAndAssemble(combined, a, surfaceBitmap, frontierBitmap)
		if err != nil {
			return LocalPath{}, false, err
		}
		winner, winnerIDs = path, ids
	}

	p.persist(winnerIDs, a)
	return winner, complete, nil
}

// reuseFromMemory implements §4.F step 3: viewpoints carried from the
// previous cycle's winning tour that still clear a gain threshold.
func (p *Planner) reuseFromMemory(surfaceBitmap, frontierBitmap []bool, frontierMode bool) []int {
	var reused []int
	for _, idx := range p.memory.ArrayInd {
		if p.mgr.Visited(idx, true) || !p.mgr.IsCandidate(idx, true) {
			continue
		}
		if p.mgr.SurfaceGain(surfaceBitmap, idx, true) >= p.cfg.MinAddPointNum {
			reused = append(reused, p.mgr.ID(idx))
			continue
		}
		if frontierMode && p.mgr.FrontierGain(frontierBitmap, idx, true) >= p.cfg.MinAddFrontierPointNum {
			reused = append(reused, p.mgr.ID(idx))
		}
	}
	return reused
}

// markCoverage marks id's covered surface and frontier points into their
// respective bitmaps. Every index is bounds-asserted by CoverageBitmap.Mark
// (§4.A, §7.2): an out-of-range point index is a programmer bug in the
// ViewpointManager implementation, not a recoverable condition, so it
// panics instead of being silently skipped.
func markCoverage(mgr ViewpointManager, id int, surfaceBitmap, frontierBitmap selector.CoverageBitmap) {
	surfaceBitmap.Mark(mgr.CoveredSurfacePoints(id, false))
	frontierBitmap.Mark(mgr.CoveredFrontierPoints(id, false))
}

func (p *Planner) greedySelectSurface(queue []selector.QueueEntry, bitmap []bool) (selected []int, updated []bool) {
	p.track(&p.viewpointSamplingRuntime, func() {
		gainFn := func(b []bool, id int) int { return p.mgr.SurfaceGain(b, id, false) }
		coveredFn := func(id int) []int { return p.mgr.CoveredSurfacePoints(id, false) }
		selected, updated = selector.SelectViewPoint(queue, bitmap, gainFn, coveredFn, selector.Options{
			MinGain:     p.cfg.MinAddPointNum,
			SampleRange: p.cfg.GreedyViewPointSampleRange,
		}, p.rng)
	})
	return selected, updated
}

func (p *Planner) greedySelectFrontier(
	queue []selector.QueueEntry, frontierBitmap, surfaceBitmap []bool, alreadySelected []int, frontierMode bool,
) (selected []int, updated []bool) {
	updated = append([]bool(nil), frontierBitmap...)
	if !frontierMode {
		return nil, updated
	}
	p.track(&p.viewpointSamplingRuntime, func() {
		selected, updated = selector.SelectViewPointFromFrontierQueue(
			p.mgr, queue, frontierBitmap, surfaceBitmap, alreadySelected,
			p.cfg.MinAddPointNum, p.cfg.MinAddFrontierPointNum, p.cfg.GreedyViewPointSampleRange, p.rng,
		)
	})
	return selected, updated
}

func (p *Planner) solveAndAssemble(ids []int, a anchors, surfaceBitmap, frontierBitmap []bool) (LocalPath, []int, float64, error) {
	var ordered []int
	var err error
	p.track(&p.tspRuntime, func() {
		ordered, err = computeTour(p.mgr, p.newSolver(), ids, a)
	})
	if err != nil || len(ordered) == 0 {
		return LocalPath{}, nil, 0, err
	}

	var path LocalPath
	p.track(&p.findPathRuntime, func() {
		path = assembleLocalPath(p.mgr, ordered, a, surfaceBitmap, frontierBitmap, p.cfg.MinAddPointNum, p.cfg.MinAddFrontierPointNum, p.logger)
	})
	return path, ordered, path.Length(), nil
}

// persist implements §4.F steps 7–8: remembers the winning tour and syncs
// the manager's "selected" flag to it, excluding the four anchors.
func (p *Planner) persist(winnerIDs []int, a anchors) {
	arrayInd := make([]int, len(winnerIDs))
	for i, id := range winnerIDs {
		arrayInd[i] = p.mgr.ArrayIndex(id)
	}
	p.memory = CycleMemory{IDs: append([]int(nil), winnerIDs...), ArrayInd: arrayInd}

	for i := 0; i < p.mgr.ViewpointCount(); i++ {
		p.mgr.SetSelected(i, false, true)
	}

	isAnchor := map[int]bool{a.Robot: true, a.Lookahead: true, a.PathStart: true, a.PathEnd: true}
	selection := make([]SelectedViewpoint, 0, len(winnerIDs))
	for _, id := range winnerIDs {
		role := RoleOther
		switch id {
		case a.Robot:
			role = RoleRobot
		case a.PathStart:
			role = RoleStart
		case a.PathEnd:
			role = RoleEnd
		case a.Lookahead:
			role = RoleLookahead
		}
		selection = append(selection, SelectedViewpoint{ID: id, Pos: p.mgr.Position(id), Role: role})
		if !isAnchor[id] {
			p.mgr.SetSelected(id, true, false)
		}
	}
	p.lastSelection = selection
}

func concatIDs(groups ...[]int) []int {
	var out []int
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func dedupeInts(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
