package manager

import (
	"fmt"
	"math"

	"github.com/northfield-robotics/covplanner/dijkstra"
	"github.com/northfield-robotics/covplanner/planner"
)

// ShortestPath returns the pose sequence of the shortest path from viewpoint
// a to viewpoint b, both given as logical ids, inclusive of both endpoints.
//
// The precomputed all-pairs closure built at construction time answers the
// "is b even reachable from a" question in O(1); only a reachable pair pays
// for the O((V+E) log V) Dijkstra run needed to recover the actual
// intermediate poses, since the closure itself only carries costs, not
// paths.
func (m *Manager) ShortestPath(a, b int) ([]planner.Point3, error) {
	m.mu.RLock()
	ai, aok := indexForID(a)
	bi, bok := indexForID(b)
	if !aok || !bok || ai < 0 || ai >= len(m.positions) || bi < 0 || bi >= len(m.positions) {
		m.mu.RUnlock()
		return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, ErrUnreachable)
	}
	if ai == bi {
		pos := m.positions[ai]
		m.mu.RUnlock()
		return []planner.Point3{pos}, nil
	}
	cost, err := m.apsp.At(ai, bi)
	if err != nil {
		m.mu.RUnlock()
		return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, err)
	}
	if math.IsInf(cost, 1) {
		m.mu.RUnlock()
		return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, ErrUnreachable)
	}
	graph := m.graph
	m.mu.RUnlock()

	_, prev, err := dijkstra.Dijkstra(graph, dijkstra.Source(fmt.Sprintf("%d", ai)), dijkstra.WithReturnPath())
	if err != nil {
		return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, err)
	}

	source := fmt.Sprintf("%d", ai)
	target := fmt.Sprintf("%d", bi)
	chain := []string{target}
	for limit := 0; chain[len(chain)-1] != source; limit++ {
		if limit > len(m.positions) {
			return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, ErrUnreachable)
		}
		p, ok := prev[chain[len(chain)-1]]
		if !ok || p == "" {
			return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, ErrUnreachable)
		}
		chain = append(chain, p)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	poses := make([]planner.Point3, len(chain))
	for i, vid := range chain {
		var idx int
		if _, err := fmt.Sscanf(vid, "%d", &idx); err != nil {
			return nil, fmt.Errorf("manager: ShortestPath(%d,%d): %w", a, b, err)
		}
		// chain is built target->source; reverse into source->target order.
		poses[len(chain)-1-i] = m.positions[idx]
	}
	return poses, nil
}
