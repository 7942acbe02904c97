package planner

import "github.com/northfield-robotics/covplanner/dtw"

// PathContinuity scores how closely next continues prev by running Dynamic
// Time Warping independently on each coordinate axis (X, Y, Z) of the two
// paths' node positions and summing the three distances. A lower score
// means next's shape tracks prev's more closely where they overlap; this is
// a diagnostic only, not consumed by SolveLocalCoverageProblem itself.
func PathContinuity(prev, next LocalPath) (float64, error) {
	if len(prev.Nodes) == 0 || len(next.Nodes) == 0 {
		return 0, nil
	}

	px, py, pz := axes(prev)
	nx, ny, nz := axes(next)

	opts := dtw.DefaultOptions()

	dx, _, err := dtw.DTW(px, nx, &opts)
	if err != nil {
		return 0, err
	}
	dy, _, err := dtw.DTW(py, ny, &opts)
	if err != nil {
		return 0, err
	}
	dz, _, err := dtw.DTW(pz, nz, &opts)
	if err != nil {
		return 0, err
	}
	return dx + dy + dz, nil
}

func axes(p LocalPath) (x, y, z []float64) {
	x = make([]float64, len(p.Nodes))
	y = make([]float64, len(p.Nodes))
	z = make([]float64, len(p.Nodes))
	for i, n := range p.Nodes {
		x[i], y[i], z[i] = n.Pos.X, n.Pos.Y, n.Pos.Z
	}
	return x, y, z
}
