// Package matrix provides a dense, float64-backed matrix type and the
// numeric kernels the planner needs to turn viewpoint shortest-path
// distances into an all-pairs table.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - FloydWarshall / APSPInPlace: in-place all-pairs shortest paths,
//     +Inf meaning "no path", used to amortize repeated shortest-path
//     lookups across a candidate viewpoint set.
//   - A small arithmetic surface (Add, Sub, Mul, Transpose, Scale, Eigen,
//     Inverse, LU, QR) inherited from the generic Matrix interface.
//
// See the package tests (methods_test.go, validators_test.go) for usage patterns.
package matrix
