// Package viz provides terminal visualization for iterated maps.
//
//   - [PlotTrajectory]: asciigraph line plot of one orbit
//   - [DiagramBraille]: bifurcation diagram drawn on a braille [Canvas]
//   - [Explorer]: Bubble Tea program to scrub the parameter interactively
//
// # Key Bindings (Explorer)
//
//	←/→ h/l - Move r by one step
//	↑/↓ k/j - Grow / shrink the step
//	+/-     - Longer / shorter trajectory
//	q       - Quit
package viz
