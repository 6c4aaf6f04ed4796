package main

import "github.com/paulmach/orb"

// Graph is a weighted adjacency graph over the passable cells of one Grid
// snapshot. It is itself a snapshot: it does not track later Grid
// transformations, so refining or rotating the grid means rebuilding.
type Graph struct {
	Nodes map[int]orb.Point // cell id -> centroid
	Edges map[int][]Edge
}

// Edge is one directed half of a symmetric connection between two cells.
type Edge struct {
	To   int     // id of the destination cell
	Cost float64 // Euclidean distance between the two centroids
}
