// Package tsp - RNG utilities shared by the tour constructor.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Safety: no panics or logging; only sentinel errors from errors.go when needed.
//   - Performance: no hidden allocations in hot paths; O(1) helpers, O(n) shuffles.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package tsp

import "math/rand"

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
// If rng==nil, a is left in its original order.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	if rng == nil {
		return
	}
	n := len(a)
	if n <= 1 {
		return
	}

	var i, j int
	for i = n - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// permRange returns a permutation of 0..n-1. If rng is non-nil, the
// identity permutation is shuffled with it; otherwise the identity order is
// returned unchanged. For n<0, returns ErrDimensionMismatch.
//
// Complexity: O(n) time, O(n) space.
func permRange(n int, rng *rand.Rand) ([]int, error) {
	if n < 0 {
		return nil, ErrDimensionMismatch
	}
	p := make([]int, n)

	var i int
	for i = 0; i < n; i++ {
		p[i] = i
	}
	shuffleIntsInPlace(p, rng)
	return p, nil
}
