// Package dynamo provides the core primitives for iterated one-dimensional maps.
//
// The package defines the fundamental types shared by the generators:
//
//   - [State]: an ordered batch of scalar states or parameter values
//   - [Recurrence]: a single-step map (state, parameter) -> next state
//   - [ArgumentError]: typed boundary error wrapping the sentinel errors
//
// # Example
//
//	next := dynamo.Recurrence(maps.Logistic)
//	dst, err := next.Apply(nil, dynamo.State{0.5}, dynamo.State{2.8, 3.2, 3.9})
//
// # Thread Safety
//
// Recurrences are pure functions and may be called from any goroutine.
// [ParallelFor] splits independent lanes across goroutines; each lane must
// only touch its own slice elements.
package dynamo
