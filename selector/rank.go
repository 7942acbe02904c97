package selector

import "sort"

// EnqueueCandidates builds the surface and frontier queues for one planning
// cycle (§4.B). It iterates the manager's candidate list, skipping
// viewpoints that are visited, outside an exploring cell, or already in
// preSelected. A viewpoint with surface gain at or above minAddPointNum
// goes into the surface queue; otherwise, if frontier mode is enabled and
// its frontier gain clears minAddFrontierPointNum, it goes into the
// frontier queue. A viewpoint never appears in both — surface wins. Both
// queues are sorted descending by gain; ties break arbitrarily.
func EnqueueCandidates(
	mgr Manager,
	surfaceBitmap, frontierBitmap []bool,
	preSelected map[int]bool,
	minAddPointNum, minAddFrontierPointNum int,
	frontierModeEnabled bool,
) (surfaceQueue, frontierQueue []QueueEntry) {
	for _, id := range mgr.CandidateIDs() {
		if preSelected[id] {
			continue
		}
		if mgr.Visited(id, false) {
			continue
		}
		if !mgr.InExploringCell(id) {
			continue
		}

		gSurf := mgr.SurfaceGain(surfaceBitmap, id, false)
		if gSurf >= minAddPointNum {
			surfaceQueue = append(surfaceQueue, QueueEntry{Gain: gSurf, ID: id})
			continue
		}

		if !frontierModeEnabled {
			continue
		}
		gFront := mgr.FrontierGain(frontierBitmap, id, false)
		if gFront >= minAddFrontierPointNum {
			frontierQueue = append(frontierQueue, QueueEntry{Gain: gFront, ID: id})
		}
	}

	sortDescending(surfaceQueue)
	sortDescending(frontierQueue)
	return surfaceQueue, frontierQueue
}

func sortDescending(q []QueueEntry) {
	sort.SliceStable(q, func(i, j int) bool { return q[i].Gain > q[j].Gain })
}
