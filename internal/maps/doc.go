// Package maps provides the built-in single-step recurrences.
//
// The logistic map is the reference model:
//
//	x_{n+1} = r * x_n * (1 - x_n)
//
// Tent and sine maps are included as drop-in substitutes; any function with
// the [dynamo.Recurrence] signature works with the generators.
package maps
