// Package analysis provides chaos and attractor analysis for iterated maps.
//
// The package includes tools for characterizing a map's long-run behaviour:
//
//   - [BifurcationDiagram]: parameter sweep reduced to distinct attractor values
//   - [BifurcationToASCII]: text rendering of a diagram
//   - [DetectPeriod]: power-of-two period of a recorded attractor
//   - [LyapunovExponent]: largest Lyapunov exponent via orbit separation
//   - [LyapunovSpectrum]: exponent for every value of a parameter range
//
// # Chaos Detection
//
// A positive Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(maps.Logistic, 0.5, 3.9, 500, 5000, 1e-9)
//	if lambda > 0 {
//	    // chaotic at r = 3.9
//	}
package analysis
