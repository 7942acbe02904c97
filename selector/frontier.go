package selector

import "math/rand"

// SelectViewPointFromFrontierQueue runs the frontier-coupled selection pass
// (§4.G). It only fires if the frontier queue is non-empty and its top gain
// strictly exceeds minAddFrontierPointNum; otherwise it is a no-op.
//
// Before ranking, it marks into a cloned frontier bitmap the frontier
// coverage sets of every id already chosen by the surface pass, re-ranks
// the frontier queue against that updated bitmap, then delegates to
// SelectViewPoint in frontier mode. surfaceBitmap is the surface pass's
// final bitmap, threaded through as SelectViewPoint's auxiliary gate so
// frontier-mode termination also observes the surface threshold, per
// §4.C's preserved dual-gate behavior.
func SelectViewPointFromFrontierQueue(
	mgr Manager,
	frontierQueue []QueueEntry,
	frontierBitmap []bool,
	surfaceBitmap []bool,
	alreadySelectedIDs []int,
	minAddPointNum, minAddFrontierPointNum, sampleRange int,
	rng *rand.Rand,
) (selectedIDs []int, updatedFrontierBitmap []bool) {
	if len(frontierQueue) == 0 || frontierQueue[0].Gain <= minAddFrontierPointNum {
		return nil, append([]bool(nil), frontierBitmap...)
	}

	fb := append([]bool(nil), frontierBitmap...)
	for _, id := range alreadySelectedIDs {
		for _, p := range mgr.CoveredFrontierPoints(id, false) {
			mustInRange(len(fb), p)
			fb[p] = true
		}
	}

	reranked := append([]QueueEntry(nil), frontierQueue...)
	for i := range reranked {
		reranked[i].Gain = mgr.FrontierGain(fb, reranked[i].ID, false)
	}
	sortDescending(reranked)

	gainFn := func(bitmap []bool, id int) int { return mgr.FrontierGain(bitmap, id, false) }
	coveredFn := func(id int) []int { return mgr.CoveredFrontierPoints(id, false) }
	auxGainFn := func(id int) int { return mgr.SurfaceGain(surfaceBitmap, id, false) }

	return SelectViewPoint(reranked, fb, gainFn, coveredFn, Options{
		MinGain:     minAddFrontierPointNum,
		SampleRange: sampleRange,
		AuxGainFn:   auxGainFn,
		AuxMinGain:  minAddPointNum,
	}, rng)
}
