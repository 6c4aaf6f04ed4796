package main

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/stretchr/testify/require"
)

// demoGrid tiles a 100x100 boundary at cell size 25. The centroid buffer
// is 50*sqrt(2), so the truncated tiling starts at -70 and yields a 10x10
// grid; 5 columns and 5 rows of it overlap the boundary.
func demoGrid(t *testing.T, obstacles ...orb.Polygon) *Grid {
	t.Helper()
	g, err := NewGrid(squarePoly(0, 0, 100), 25, 0, obstacles)
	require.NoError(t, err)
	return g
}

func TestNewGridValidation(t *testing.T) {
	_, err := NewGrid(squarePoly(0, 0, 100), 0, 0, nil)
	require.ErrorIs(t, err, ErrInvalidGridSpec)

	_, err = NewGrid(squarePoly(0, 0, 100), -3, 0, nil)
	require.ErrorIs(t, err, ErrInvalidGridSpec)

	degenerate := orb.Polygon{orb.Ring{{0, 0}, {1, 1}, {0, 0}}}
	_, err = NewGrid(degenerate, 25, 0, nil)
	require.ErrorIs(t, err, ErrInvalidGridSpec)

	_, err = NewGrid(orb.Polygon{}, 25, 0, nil)
	require.ErrorIs(t, err, ErrInvalidGridSpec)
}

func TestNewGridTiling(t *testing.T) {
	g := demoGrid(t)

	require.Len(t, g.Cells, 100)
	require.Equal(t, 100, g.PassableCount())

	buffer := 50 * math.Sqrt2
	box := paddedBound(squarePoly(0, 0, 100).Bound(), buffer)
	for i, c := range g.Cells {
		require.Equal(t, i, c.ID, "ids are dense and ordered")
		b := c.Geometry.Bound()
		require.GreaterOrEqual(t, b.Min[0], box.Min[0])
		require.GreaterOrEqual(t, b.Min[1], box.Min[1])
		require.LessOrEqual(t, b.Max[0], box.Max[0]+1e-9)
		require.LessOrEqual(t, b.Max[1], box.Max[1]+1e-9)
	}

	// The tiled region must cover the whole boundary.
	union := g.Cells[0].Geometry.Bound()
	for _, c := range g.Cells[1:] {
		union = union.Union(c.Geometry.Bound())
	}
	require.LessOrEqual(t, union.Min[0], 0.0)
	require.LessOrEqual(t, union.Min[1], 0.0)
	require.GreaterOrEqual(t, union.Max[0], 100.0)
	require.GreaterOrEqual(t, union.Max[1], 100.0)
}

func TestIntersectRefiner(t *testing.T) {
	g := demoGrid(t).Intersect()

	require.Len(t, g.Cells, 25)
	for i, c := range g.Cells {
		require.Equal(t, i, c.ID, "re-indexed densely")
		require.True(t, polygonsOverlap(c.Geometry, g.Boundary))
		// Survivors keep their full geometry.
		b := c.Geometry.Bound()
		require.InDelta(t, 25, b.Max[0]-b.Min[0], 1e-9)
		require.InDelta(t, 25, b.Max[1]-b.Min[1], 1e-9)
	}
}

func TestClipRefiner(t *testing.T) {
	g := demoGrid(t).Clip()

	require.Len(t, g.Cells, 25)

	var total float64
	for i, c := range g.Cells {
		require.Equal(t, i, c.ID)
		area := planar.Area(c.Geometry)
		require.Greater(t, area, 0.0)
		total += area

		b := c.Geometry.Bound()
		require.GreaterOrEqual(t, b.Min[0], -1e-9, "clipped inside boundary")
		require.GreaterOrEqual(t, b.Min[1], -1e-9)
		require.LessOrEqual(t, b.Max[0], 100+1e-9)
		require.LessOrEqual(t, b.Max[1], 100+1e-9)
	}
	require.InDelta(t, 10000, total, 1e-6, "clipped cells tile the boundary exactly")
}

func TestRotationRoundTrip(t *testing.T) {
	obstacle := squarePoly(32, 32, 21)

	plain, err := NewGrid(squarePoly(0, 0, 100), 25, 0, []orb.Polygon{obstacle})
	require.NoError(t, err)
	rotated, err := NewGrid(squarePoly(0, 0, 100), 25, 30, []orb.Polygon{obstacle})
	require.NoError(t, err)

	restored := rotated.Rotate(-30)
	require.InDelta(t, 0, restored.Rotation, 1e-12)
	require.Len(t, restored.Cells, len(plain.Cells))

	for i := range restored.Cells {
		require.Equal(t, rotated.Cells[i].Passable, restored.Cells[i].Passable,
			"rotation never touches passability")
		for j, p := range plain.Cells[i].Geometry[0] {
			require.InDelta(t, p[0], restored.Cells[i].Geometry[0][j][0], 1e-6)
			require.InDelta(t, p[1], restored.Cells[i].Geometry[0][j][1], 1e-6)
		}
	}

	// The source snapshot is untouched.
	require.InDelta(t, 30, rotated.Rotation, 1e-12)
}

func TestObstaclePassability(t *testing.T) {
	// Strictly inside the cell spanning [30,55)x[30,55); touching counts
	// as blocking, so the obstacle must not reach neighboring cells.
	g := demoGrid(t, squarePoly(32, 32, 21)).Intersect()

	blocked := make([]int, 0, 1)
	for _, c := range g.Cells {
		if !c.Passable {
			blocked = append(blocked, c.ID)
		}
	}
	require.Equal(t, []int{12}, blocked)
	require.InDelta(t, 42.5, g.Cells[12].Centroid[0], 1e-9)
	require.InDelta(t, 42.5, g.Cells[12].Centroid[1], 1e-9)
}

func TestObstacleEdgeTouchBlocks(t *testing.T) {
	// Obstacle sharing the full edge x=55 with the cell at [30,55)x[30,55):
	// boundary contact alone must flip the cell.
	g := demoGrid(t, squarePoly(55, 30, 25))

	for _, c := range g.Cells {
		b := c.Geometry.Bound()
		if b.Min[0] == 30 && b.Min[1] == 30 {
			require.False(t, c.Passable, "edge-touching obstacle blocks the cell")
		}
	}
}

func TestAddAndClearObstacleSnapshots(t *testing.T) {
	base := demoGrid(t).Intersect()
	require.Equal(t, 25, base.PassableCount())

	withObstacle := base.AddObstacle(squarePoly(32, 32, 21))
	require.Equal(t, 25, base.PassableCount(), "source snapshot unchanged")
	require.Equal(t, 24, withObstacle.PassableCount())

	cleared := withObstacle.ClearObstacles()
	require.Equal(t, 25, cleared.PassableCount())
	require.Empty(t, cleared.Obstacles)
	require.Equal(t, 24, withObstacle.PassableCount(), "intermediate snapshot unchanged")
}

func TestAddObstacleDropsContained(t *testing.T) {
	g := demoGrid(t).AddObstacle(squarePoly(30, 30, 25), squarePoly(35, 35, 5))
	require.Len(t, g.Obstacles, 1, "contained obstacle dropped")
}

func TestClosestCellID(t *testing.T) {
	g := demoGrid(t).Intersect()

	// Column-major ids: column x=5 holds ids 5..9, its y=5 row is id 6
	// with centroid (17.5, 17.5).
	id, err := g.ClosestCellID(orb.Point{12, 12})
	require.NoError(t, err)
	require.Equal(t, 6, id)

	// Querying an exact centroid returns that cell.
	id, err = g.ClosestCellID(g.Cells[6].Centroid)
	require.NoError(t, err)
	require.Equal(t, 6, id)

	// Equidistant between ids 1 and 6: lowest id wins.
	id, err = g.ClosestCellID(orb.Point{5, 17.5})
	require.NoError(t, err)
	require.Equal(t, 1, id)

	// Far outside the grid is still answered; range policy is the caller's.
	id, err = g.ClosestCellID(orb.Point{1e6, 1e6})
	require.NoError(t, err)
	require.Equal(t, 24, id)
}

func TestClosestCellIDNoPassableCells(t *testing.T) {
	everything := squarePoly(-500, -500, 1200)
	g := demoGrid(t, everything)
	require.Equal(t, 0, g.PassableCount())

	_, err := g.ClosestCellID(orb.Point{50, 50})
	require.ErrorIs(t, err, ErrNoPassableCells)
}

func TestRefinersComposable(t *testing.T) {
	g := demoGrid(t).Intersect().Clip()

	require.Len(t, g.Cells, 25)
	for i, c := range g.Cells {
		require.Equal(t, i, c.ID)
	}

	var total float64
	for _, c := range g.Cells {
		total += planar.Area(c.Geometry)
	}
	require.InDelta(t, 10000, total, 1e-6)
}
