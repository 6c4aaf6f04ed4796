package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// cellEntry wraps a cell for R-tree storage.
type cellEntry struct {
	cell *Cell
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *cellEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// cellIndex answers "which cells could touch this box" queries during
// neighbor detection, keeping graph construction near-linear in the cell
// count instead of quadratic.
type cellIndex struct {
	tree *rtreego.Rtree
}

// newCellIndex indexes every cell by its geometry's bounding box.
func newCellIndex(cells []Cell) *cellIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	for i := range cells {
		rect, err := boundToRect(cells[i].Geometry.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&cellEntry{cell: &cells[i], bbox: rect})
	}

	return &cellIndex{tree: tree}
}

// queryRegion returns the cells whose bounding boxes intersect b.
func (ci *cellIndex) queryRegion(b orb.Bound) []*Cell {
	rect, err := boundToRect(b)
	if err != nil {
		return nil
	}

	results := ci.tree.SearchIntersect(rect)
	cells := make([]*Cell, 0, len(results))
	for _, item := range results {
		cells = append(cells, item.(*cellEntry).cell)
	}

	return cells
}

// boundToRect converts an orb bounding box to an rtreego rectangle.
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]},
	)
}
