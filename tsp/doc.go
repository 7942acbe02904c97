// Package tsp builds a fixed-endpoint tour over a small candidate set.
//
// The planner hands this package a dense pairwise-distance matrix (built
// from shortest-path distances between viewpoints, anchors, and a zero-cost
// dummy node standing in for the path's free end) and a depot index, and
// gets back a Hamiltonian cycle through every row of the matrix, starting
// and ending at the depot.
//
// Construction is a cheap nearest-neighbor seed followed by first-improvement
// local search (TwoOpt): classic 2-opt segment reversal for symmetric
// instances, 2-opt* tail-swap for asymmetric ones. Instance sizes here are
// small — a handful to a few dozen viewpoints per planning cycle — so no
// exact solver or branch-and-bound is provided; local search reliably finds
// a good tour in the time budget available.
package tsp
