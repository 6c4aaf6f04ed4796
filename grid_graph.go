package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// adjacencyToleranceRatio sizes the fattening buffer used during neighbor
// detection as a fraction of the cell size. It only has to exceed the
// floating-point noise between nominally touching tiles while staying far
// below anything that could bridge two non-adjacent cells.
const adjacencyToleranceRatio = 0.01

// BuildCellGraph converts a grid snapshot into a weighted adjacency
// graph. Every passable cell becomes a node keyed by its id. Two cells
// are connected when one of them, fattened outward by the tolerance,
// intersects the other's untouched geometry; corner contact counts, so an
// unrotated grid gets 8-neighbor connectivity. Edge cost is the Euclidean
// distance between the two centroids, inserted in both directions.
// Impassable cells contribute neither nodes nor edges.
//
// Candidate pairs come from an R-tree over cell bounding boxes rather
// than an all-pairs scan; cell counts grow with boundary area over the
// squared cell size, so the quadratic form degrades quickly.
func BuildCellGraph(grid *Grid) *Graph {
	graph := &Graph{
		Nodes: make(map[int]orb.Point, len(grid.Cells)),
		Edges: make(map[int][]Edge),
	}

	for i := range grid.Cells {
		if grid.Cells[i].Passable {
			graph.Nodes[grid.Cells[i].ID] = grid.Cells[i].Centroid
		}
	}

	tolerance := grid.CellSize * adjacencyToleranceRatio
	index := newCellIndex(grid.Cells)

	for i := range grid.Cells {
		a := &grid.Cells[i]
		if !a.Passable {
			continue
		}
		fattened := expandPolygon(a.Geometry, tolerance)
		for _, b := range index.queryRegion(paddedBound(a.Geometry.Bound(), 2*tolerance)) {
			// Visit each unordered pair once; b.ID == a.ID also rules
			// out self-loops.
			if b.ID <= a.ID || !b.Passable {
				continue
			}
			if !polygonsOverlap(fattened, b.Geometry) {
				continue
			}
			cost := planar.Distance(a.Centroid, b.Centroid)
			graph.Edges[a.ID] = append(graph.Edges[a.ID], Edge{To: b.ID, Cost: cost})
			graph.Edges[b.ID] = append(graph.Edges[b.ID], Edge{To: a.ID, Cost: cost})
		}
	}

	return graph
}
