// Package render draws trajectories and bifurcation diagrams as raster
// images with go-chart and assembles frame sequences into animated GIFs.
package render
