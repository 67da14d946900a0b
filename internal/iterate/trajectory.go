package iterate

import (
	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Trajectory returns the first n states of the orbit of x0 under f with
// parameter r. Element 0 is x0.
func Trajectory(f dynamo.Recurrence, x0 float64, n int, r float64) ([]float64, error) {
	if n <= 0 {
		return nil, dynamo.InvalidLength("trajectory", "length", n)
	}

	values := make([]float64, n)
	values[0] = x0
	for i := 0; i < n-1; i++ {
		values[i+1] = f(values[i], r)
	}

	return values, nil
}

// TrajectoryBatch computes one orbit of length n per parameter value, all
// starting from x0. Row i of the result is element i of every orbit.
func TrajectoryBatch(f dynamo.Recurrence, x0 float64, n int, rs dynamo.State, opts ...Option) (*Table, error) {
	if n <= 0 {
		return nil, dynamo.InvalidLength("trajectory_batch", "length", n)
	}
	if len(rs) == 0 {
		return nil, dynamo.ShapeMismatch("trajectory_batch", 1, 0)
	}

	o := buildOptions(opts)
	table := newTable(rs, n, 0)

	dynamo.ParallelFor(len(rs), o.workers, o.minLanes, func(start, end int) {
		params := rs[start:end]
		lanes := dynamo.Fill(end-start, x0)
		table.setRow(0, lanes, start)

		for i := 1; i < n; i++ {
			// Shapes are equal by construction.
			lanes, _ = f.Apply(lanes, lanes, params)
			table.setRow(i, lanes, start)
		}
	})

	return table, nil
}
