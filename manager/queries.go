package manager

import (
	"github.com/northfield-robotics/covplanner/gridgraph"
	"github.com/northfield-robotics/covplanner/planner"
)

// CandidateIDs returns every viewpoint id currently flagged as a candidate,
// in ascending array-index order.
func (m *Manager) CandidateIDs() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, 0, len(m.candidate))
	for i, ok := range m.candidate {
		if ok {
			ids = append(ids, idForIndex(i))
		}
	}
	return ids
}

// NearestCandidate returns the candidate id whose position is closest to
// pos, or -1 if no candidate exists.
func (m *Manager) NearestCandidate(pos planner.Point3) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	best := -1
	bestDist := 0.0
	for i, ok := range m.candidate {
		if !ok {
			continue
		}
		d := planner.Distance(pos, m.positions[i])
		if best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best == -1 {
		return -1
	}
	return idForIndex(best)
}

// InLocalPlanningHorizon reports whether pos lies within the manager's
// configured horizon. When a horizon grid is set (SetHorizonGrid), pos's
// footprint cell must fall inside the grid and be "land"; otherwise a
// sphere-radius check applies, and a zero-radius horizon (the default,
// unset by SetHorizon) always reports true.
func (m *Manager) InLocalPlanningHorizon(pos planner.Point3) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.horizonGrid != nil {
		x, y, ok := m.horizonCell(pos)
		if !ok {
			return false
		}
		return m.horizonGrid.CellValues[y][x] >= m.horizonGrid.LandThreshold
	}
	if m.horizonRadius <= 0 {
		return true
	}
	return planner.Distance(pos, m.horizonCenter) <= m.horizonRadius
}

func (m *Manager) horizonCell(pos planner.Point3) (x, y int, ok bool) {
	x = int((pos.X - m.horizonOrigin.X) / m.horizonCellSize)
	y = int((pos.Y - m.horizonOrigin.Y) / m.horizonCellSize)
	return x, y, m.horizonGrid.InBounds(x, y)
}

// SetHorizon declares the local planning region as a sphere of radius r
// centered at c. A non-positive r disables the check (always-true). Clears
// any grid set by SetHorizonGrid.
func (m *Manager) SetHorizon(center planner.Point3, radius float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.horizonCenter = center
	m.horizonRadius = radius
	m.horizonGrid = nil
}

// SetHorizonGrid declares the local planning region as the "land" footprint
// of a rasterized occupancy grid (gridgraph.GridGraph): cells at or above
// opts.LandThreshold are inside the horizon. origin is the world position
// of cell (0,0); cellSize is the edge length of one grid cell in world
// units. Overrides any sphere set by SetHorizon.
func (m *Manager) SetHorizonGrid(cells [][]int, opts gridgraph.GridOptions, origin planner.Point3, cellSize float64) error {
	if cellSize <= 0 {
		return ErrInvalidCellSize
	}
	gg, err := gridgraph.NewGridGraph(cells, opts)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.horizonGrid = gg
	m.horizonOrigin = origin
	m.horizonCellSize = cellSize
	return nil
}

// InRange reports whether id resolves to a tracked viewpoint.
func (m *Manager) InRange(id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := indexForID(id)
	return ok && idx >= 0 && idx < len(m.positions)
}

func (m *Manager) resolve(ref int, byArray bool) (int, bool) {
	if byArray {
		if ref < 0 || ref >= len(m.positions) {
			return 0, false
		}
		return ref, true
	}
	idx, ok := indexForID(ref)
	if !ok || idx < 0 || idx >= len(m.positions) {
		return 0, false
	}
	return idx, true
}

// IsCandidate reports the candidate predicate for ref.
func (m *Manager) IsCandidate(ref int, byArray bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(ref, byArray)
	return ok && m.candidate[idx]
}

// Visited reports whether ref has already been visited.
func (m *Manager) Visited(ref int, byArray bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(ref, byArray)
	return ok && m.visited[idx]
}

// SetVisited marks ref visited or unvisited; exported so callers (tests and
// a host process advancing the robot) can update manager state between
// planning cycles.
func (m *Manager) SetVisited(ref int, value bool, byArray bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := m.resolve(ref, byArray); ok {
		m.visited[idx] = value
	}
}

// InExploringCell reports whether id lies in a cell flagged worth
// exploring.
func (m *Manager) InExploringCell(id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := indexForID(id)
	return ok && idx >= 0 && idx < len(m.exploring) && m.exploring[idx]
}

// SetExploringCell flags or unflags id's cell as worth exploring.
func (m *Manager) SetExploringCell(id int, value bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := indexForID(id); ok && idx >= 0 && idx < len(m.exploring) {
		m.exploring[idx] = value
	}
}

// ArrayIndex converts a logical id to its dense array index, or -1 if id is
// out of range.
func (m *Manager) ArrayIndex(id int) int {
	idx, ok := indexForID(id)
	if !ok {
		return -1
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if idx < 0 || idx >= len(m.positions) {
		return -1
	}
	return idx
}

// ID converts a dense array index back to its logical id, or -1 if
// arrayInd is out of range.
func (m *Manager) ID(arrayInd int) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if arrayInd < 0 || arrayInd >= len(m.positions) {
		return -1
	}
	return idForIndex(arrayInd)
}

// CoveredSurfacePoints returns the surface point indices ref's viewpoint
// observes.
func (m *Manager) CoveredSurfacePoints(ref int, byArray bool) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(ref, byArray)
	if !ok {
		return nil
	}
	return append([]int(nil), m.surface[idx]...)
}

// CoveredFrontierPoints returns the frontier point indices ref's viewpoint
// observes.
func (m *Manager) CoveredFrontierPoints(ref int, byArray bool) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(ref, byArray)
	if !ok {
		return nil
	}
	return append([]int(nil), m.frontier[idx]...)
}

// SurfaceGain returns the count of ref's surface points not yet marked true
// in bitmap.
func (m *Manager) SurfaceGain(bitmap []bool, ref int, byArray bool) int {
	return gain(bitmap, m.CoveredSurfacePoints(ref, byArray))
}

// FrontierGain returns the count of ref's frontier points not yet marked
// true in bitmap.
func (m *Manager) FrontierGain(bitmap []bool, ref int, byArray bool) int {
	return gain(bitmap, m.CoveredFrontierPoints(ref, byArray))
}

func gain(bitmap []bool, points []int) int {
	count := 0
	for _, p := range points {
		if p >= 0 && p < len(bitmap) && !bitmap[p] {
			count++
		}
	}
	return count
}

// Position returns the 3D position of viewpoint id.
func (m *Manager) Position(id int) planner.Point3 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := indexForID(id)
	if !ok || idx < 0 || idx >= len(m.positions) {
		return planner.Point3{}
	}
	return m.positions[idx]
}

// SetSelected sets the manager's per-viewpoint "selected" flag.
func (m *Manager) SetSelected(ref int, value bool, byArray bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := m.resolve(ref, byArray); ok {
		m.selected[idx] = value
	}
}

// Selected reports the current "selected" flag for ref.
func (m *Manager) Selected(ref int, byArray bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.resolve(ref, byArray)
	return ok && m.selected[idx]
}
