package tsp

import "errors"

// Sentinel errors for tsp operations.
var (
	// ErrDimensionMismatch indicates a distance matrix or tour has an
	// inconsistent or invalid shape.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")

	// ErrNonSquare indicates a non-square distance matrix was supplied.
	ErrNonSquare = errors.New("tsp: distance matrix must be square")

	// ErrStartOutOfRange indicates the depot/start vertex is outside [0, n).
	ErrStartOutOfRange = errors.New("tsp: start vertex out of range")

	// ErrNegativeWeight indicates a negative entry in the distance matrix.
	ErrNegativeWeight = errors.New("tsp: negative edge weight")

	// ErrIncompleteGraph indicates a required edge is missing (+Inf weight).
	ErrIncompleteGraph = errors.New("tsp: incomplete graph, required edge missing")

	// ErrTimeLimit indicates the solver's soft wall-clock budget expired
	// before a local optimum was reached.
	ErrTimeLimit = errors.New("tsp: time limit exceeded")

	// ErrNoSolution indicates Solution was called before a successful Solve.
	ErrNoSolution = errors.New("tsp: no solution available, call Solve first")
)
