// Package iterate generates trajectories and bifurcation sweeps from a
// [dynamo.Recurrence].
//
//   - [Trajectory]: one orbit of length n from a seed
//   - [TrajectoryBatch]: one orbit per parameter value, computed in lockstep
//   - [Sweep]: discard a transient, then record the attractor of every lane
//   - [LinearRange]: evenly spaced parameter values, both endpoints included
//
// Every call owns its working arrays; nothing is retained between calls, so
// identical inputs always produce bit-identical output.
//
// # Sweeps
//
// Lanes (parameter values) never interact, so a sweep advances all of them
// with one batched step per iteration:
//
//	rs, _ := iterate.LinearRange(2.5, 4, 1000)
//	table, _ := iterate.Sweep(maps.Logistic, 0.5, 500, 100, rs)
//	for _, p := range table.Points() {
//	    plot(p.R, p.X)
//	}
//
// [WithWorkers] splits lanes across goroutines for large sweeps.
package iterate
