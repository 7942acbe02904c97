package tsp

import "time"

// Options configures tour construction and the 2-opt local-search pass.
//
// Zero-value Options is usable: StartVertex defaults to 0, Eps to 0 (exact
// strict-improvement acceptance), TwoOptMaxIters to 0 (unlimited, run to a
// local optimum), TimeLimit to 0 (no soft deadline). Symmetric defaults to
// false (zero value); callers solving a symmetric distance matrix — the
// only case this module ever constructs — must set Symmetric: true
// explicitly, or use DefaultOptions.
type Options struct {
	// StartVertex is the depot index the tour must begin and end at.
	StartVertex int

	// Symmetric selects the local-search neighborhood: true runs classic
	// 2-opt (segment reversal), false runs 2-opt* (tail-swap, no
	// reversal) for asymmetric instances.
	Symmetric bool

	// Eps is the minimum strict-improvement margin a candidate move must
	// clear to be accepted (delta < -Eps). Must be >= 0.
	Eps float64

	// TwoOptMaxIters caps the number of accepted improving moves. 0 means
	// unlimited — run until a local optimum is reached.
	TwoOptMaxIters int

	// TimeLimit is a soft wall-clock budget for the 2-opt pass. 0 means
	// no limit. Checked after every 2048th accepted move, so the actual
	// overrun is small but non-zero.
	TimeLimit time.Duration
}

// DefaultOptions returns the Options used when a caller does not override
// anything: symmetric 2-opt, strict improvement, no iteration or time cap.
func DefaultOptions(startVertex int) Options {
	return Options{
		StartVertex:    startVertex,
		Symmetric:      true,
		Eps:            0,
		TwoOptMaxIters: 0,
		TimeLimit:      0,
	}
}
