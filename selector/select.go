package selector

import "math/rand"

// Options parameterizes one SelectViewPoint call.
type Options struct {
	// MinGain gates both the initial check and every iteration's
	// termination check: MinAddPointNum in surface mode, MinAddFrontierPointNum
	// in frontier mode.
	MinGain int

	// SampleRange bounds how many top-ranked entries of the *original*
	// queue (not the shrinking working copy) the draw samples from.
	SampleRange int

	// AuxGainFn and AuxMinGain, when AuxGainFn is non-nil, add a second
	// termination trigger evaluated against the working queue's current
	// top entry: the loop also stops if AuxGainFn(topID) < AuxMinGain.
	// This reproduces §4.C's preserved quirk that frontier-mode
	// termination checks the surface threshold too, in addition to the
	// frontier one — either condition stops the loop.
	AuxGainFn  func(id int) int
	AuxMinGain int
}

// SelectViewPoint runs one randomized greedy maximum-coverage pass over a
// single ranked queue and a single bitmap (§4.C). It never mutates its
// inputs: queue and bitmap are cloned internally, and the clones — not the
// caller's originals — are what gets returned.
//
// Initial gate: if queue is empty or its top gain is below opts.MinGain,
// nothing is selected and the (cloned) bitmap is returned unchanged.
//
// Each iteration: k = min(opts.SampleRange, count of the *original* queue's
// entries with gain >= opts.MinGain, len(working queue)); a uniformly
// random index in [0,k) is drawn via rng and that working-queue entry is
// picked, its covered points marked into the working bitmap, and every
// remaining entry's gain recomputed and the queue re-sorted descending.
// The loop stops when the working queue empties or its top entry fails
// opts.MinGain (or, with AuxGainFn set, opts.AuxMinGain).
func SelectViewPoint(
	queue []QueueEntry,
	bitmap []bool,
	gainFn GainFunc,
	coveredFn CoveredFunc,
	opts Options,
	rng *rand.Rand,
) (selectedIDs []int, updatedBitmap []bool) {
	working := append([]QueueEntry(nil), queue...)
	wbitmap := append([]bool(nil), bitmap...)

	if len(working) == 0 || working[0].Gain < opts.MinGain {
		return nil, wbitmap
	}

	for {
		if len(working) == 0 || working[0].Gain < opts.MinGain {
			break
		}
		if opts.AuxGainFn != nil && opts.AuxGainFn(working[0].ID) < opts.AuxMinGain {
			break
		}

		k := originalSampleWindow(queue, opts.MinGain, opts.SampleRange)
		if k > len(working) {
			k = len(working)
		}
		if k < 1 {
			k = 1
		}

		idx := 0
		if k > 1 {
			idx = rng.Intn(k)
		}

		pick := working[idx]
		selectedIDs = append(selectedIDs, pick.ID)

		for _, p := range coveredFn(pick.ID) {
			mustInRange(len(wbitmap), p)
			wbitmap[p] = true
		}

		working = append(working[:idx], working[idx+1:]...)
		for i := range working {
			working[i].Gain = gainFn(wbitmap, working[i].ID)
		}
		sortDescending(working)
	}

	return selectedIDs, wbitmap
}

// originalSampleWindow recomputes the sample window from the original
// queue snapshot every call — deliberately not from the shrinking working
// copy, so the randomization window does not collapse to 1 prematurely
// (§4.C, load-bearing).
func originalSampleWindow(original []QueueEntry, minGain, sampleRange int) int {
	count := 0
	for _, e := range original {
		if e.Gain >= minGain {
			count++
		}
	}
	if count > sampleRange {
		return sampleRange
	}
	return count
}
