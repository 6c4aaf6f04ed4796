package main

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Cell is one tile of a Grid. The id is a dense zero-based index that is
// only meaningful within the snapshot that produced it; refining or
// re-indexing a grid invalidates ids held from earlier snapshots.
type Cell struct {
	ID       int
	Geometry orb.Polygon
	Centroid orb.Point
	Passable bool
}

// Grid is an ordered collection of cells sharing one coordinate frame,
// one cell size and one rotation. Grids are snapshots: every
// transformation (Rotate, AddObstacle, ClearObstacles, Clip, Intersect)
// returns a new Grid and leaves the receiver untouched, so a caller can
// never observe a partially updated cell set.
type Grid struct {
	Boundary  orb.Polygon
	CellSize  float64
	Rotation  float64 // degrees, counter-clockwise positive
	Obstacles []orb.Polygon
	Cells     []Cell

	anchor orb.Point // boundary centroid; origin for every rotation
}

// closedRing returns the ring with its first point appended as the last
// when the input is not already closed.
func closedRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 || ring[0] == ring[len(ring)-1] {
		return ring
	}
	out := make(orb.Ring, 0, len(ring)+1)
	out = append(out, ring...)
	return append(out, ring[0])
}

// blockedByAny checks a cell geometry against every obstacle. Boundary
// contact counts as blocking.
func blockedByAny(geom orb.Polygon, obstacles []orb.Polygon) bool {
	for _, obstacle := range obstacles {
		if polygonsOverlap(geom, obstacle) {
			return true
		}
	}
	return false
}

// NewGrid tiles the boundary's buffered bounding box into square cells and
// marks each cell impassable where it overlaps any obstacle polygon.
//
// The bounding box is expanded on every side by the maximum distance from
// the boundary centroid to a boundary vertex, so the tiling keeps covering
// the boundary under any later rotation about that centroid. Tiling starts
// at the integer-truncated box minimum and follows the half-open rule
// [x, x+cellSize); far-edge cells falling short of a full cell are emitted
// at truncated size. Cells are created column-major — x ascending outer,
// y ascending inner — and ids follow that construction order.
//
// Rotation is in degrees, counter-clockwise positive, applied about the
// boundary centroid. Obstacle polygons fully contained in other obstacles
// are dropped before passability testing.
func NewGrid(boundary orb.Polygon, cellSize, rotation float64, obstacles []orb.Polygon) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %g: %w", cellSize, ErrInvalidGridSpec)
	}
	if len(boundary) == 0 {
		return nil, fmt.Errorf("boundary has no outer ring: %w", ErrInvalidGridSpec)
	}
	ring := closedRing(boundary[0])
	if len(ring)-1 < 3 {
		return nil, fmt.Errorf("boundary needs at least 3 vertices, got %d: %w", len(ring)-1, ErrInvalidGridSpec)
	}
	normalized := make(orb.Polygon, len(boundary))
	normalized[0] = ring
	copy(normalized[1:], boundary[1:])

	anchor := centroidOf(normalized)
	buffer := maxVertexDistance(ring, anchor)
	box := paddedBound(normalized.Bound(), buffer)

	minX := math.Trunc(box.Min[0])
	minY := math.Trunc(box.Min[1])
	maxX := box.Max[0]
	maxY := box.Max[1]

	obstacles = removeContainedObstacles(obstacles)

	g := &Grid{
		Boundary:  normalized,
		CellSize:  cellSize,
		Rotation:  rotation,
		Obstacles: obstacles,
		anchor:    anchor,
	}

	for x := minX; x < maxX; x += cellSize {
		for y := minY; y < maxY; y += cellSize {
			x2 := math.Min(x+cellSize, maxX)
			y2 := math.Min(y+cellSize, maxY)
			geom := orb.Polygon{orb.Ring{
				{x, y}, {x2, y}, {x2, y2}, {x, y2}, {x, y},
			}}
			if rotation != 0 {
				geom = rotatePolygon(geom, anchor, rotation)
			}
			g.Cells = append(g.Cells, Cell{
				ID:       len(g.Cells),
				Geometry: geom,
				Centroid: centroidOf(geom),
				Passable: !blockedByAny(geom, obstacles),
			})
		}
	}
	return g, nil
}

// snapshot copies the grid with a replacement cell slice.
func (g *Grid) snapshot(cells []Cell) *Grid {
	ng := *g
	ng.Cells = cells
	return &ng
}

// Rotate returns a new Grid with every cell's geometry rotated by the
// given angle in degrees (counter-clockwise positive) about the source
// boundary's centroid. Passability flags and ids are preserved; rotating
// by θ and then by -θ restores the original geometry up to floating
// tolerance.
func (g *Grid) Rotate(degrees float64) *Grid {
	cells := make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		c.Geometry = rotatePolygon(c.Geometry, g.anchor, degrees)
		c.Centroid = rotatePoint(c.Centroid, g.anchor, degrees)
		cells[i] = c
	}
	ng := g.snapshot(cells)
	ng.Rotation = g.Rotation + degrees
	return ng
}

// AddObstacle returns a new Grid whose obstacle set additionally contains
// the given polygons. Every cell's passability is recomputed against the
// full set; obstacles fully contained in others are dropped first.
func (g *Grid) AddObstacle(obstacles ...orb.Polygon) *Grid {
	set := make([]orb.Polygon, 0, len(g.Obstacles)+len(obstacles))
	set = append(set, g.Obstacles...)
	set = append(set, obstacles...)
	set = removeContainedObstacles(set)

	cells := make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		c.Passable = !blockedByAny(c.Geometry, set)
		cells[i] = c
	}
	ng := g.snapshot(cells)
	ng.Obstacles = set
	return ng
}

// ClearObstacles returns a new Grid with an empty obstacle set; every
// cell becomes passable.
func (g *Grid) ClearObstacles() *Grid {
	cells := make([]Cell, len(g.Cells))
	for i, c := range g.Cells {
		c.Passable = true
		cells[i] = c
	}
	ng := g.snapshot(cells)
	ng.Obstacles = nil
	return ng
}

// Clip returns a new Grid in which every cell's geometry is intersected
// with the boundary polygon. Cells straddling the boundary are truncated;
// cells left empty by the intersection are dropped. Survivors are
// re-indexed densely in their previous order, which invalidates ids (and
// any Path) taken from the old snapshot.
func (g *Grid) Clip() *Grid {
	cells := make([]Cell, 0, len(g.Cells))
	for _, c := range g.Cells {
		ring := clipRingToConvex(g.Boundary[0], c.Geometry[0])
		if ring == nil {
			continue
		}
		c.ID = len(cells)
		c.Geometry = orb.Polygon{ring}
		c.Centroid = centroidOf(c.Geometry)
		cells = append(cells, c)
	}
	return g.snapshot(cells)
}

// Intersect returns a new Grid keeping only cells that overlap the
// boundary at all; survivors keep their full, untruncated geometry and
// are re-indexed densely in their previous order.
func (g *Grid) Intersect() *Grid {
	cells := make([]Cell, 0, len(g.Cells))
	for _, c := range g.Cells {
		if !polygonsOverlap(c.Geometry, g.Boundary) {
			continue
		}
		c.ID = len(cells)
		cells = append(cells, c)
	}
	return g.snapshot(cells)
}

// ClosestCellID returns the id of the passable cell whose centroid is
// nearest to p, ties resolving to the lowest id. Whether a far-away
// nearest cell is acceptable is the caller's policy; the locator imposes
// no distance bound.
func (g *Grid) ClosestCellID(p orb.Point) (int, error) {
	best := -1
	bestDist := math.MaxFloat64
	for i := range g.Cells {
		if !g.Cells[i].Passable {
			continue
		}
		if d := planar.Distance(p, g.Cells[i].Centroid); d < bestDist {
			best = g.Cells[i].ID
			bestDist = d
		}
	}
	if best < 0 {
		return 0, ErrNoPassableCells
	}
	return best, nil
}

// PassableCount reports how many cells are currently passable.
func (g *Grid) PassableCount() int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Passable {
			n++
		}
	}
	return n
}
