package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestSimplifyObstaclesDropsCollinearPoints(t *testing.T) {
	// A square with a redundant midpoint on every edge.
	noisy := orb.Polygon{orb.Ring{
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1}, {0, 0},
	}}

	result := SimplifyObstacles([]orb.Polygon{noisy}, 0.01)
	require.Len(t, result, 1)

	ring := result[0][0]
	require.Len(t, ring, 5, "four corners plus the closing point")
	require.Equal(t, ring[0], ring[len(ring)-1], "ring stays closed")
	require.InDelta(t, 4.0, signedArea(ring), 1e-9, "area preserved")
}

func TestSimplifyObstaclesZeroEpsilonNoop(t *testing.T) {
	poly := squarePoly(0, 0, 2)
	result := SimplifyObstacles([]orb.Polygon{poly}, 0)
	require.Equal(t, poly, result[0])
}

func TestSimplifyPolygonKeepsTriangles(t *testing.T) {
	tri := orb.Polygon{orb.Ring{{0, 0}, {4, 0}, {2, 3}, {0, 0}}}
	require.Equal(t, tri, simplifyPolygon(tri, 10), "nothing left to remove")
}

func TestSimplifyPolygonFallsBackOnDegenerate(t *testing.T) {
	// A huge epsilon would collapse the ring; the original must survive.
	poly := orb.Polygon{orb.Ring{
		{0, 0}, {1, 0.001}, {2, 0}, {2, 1}, {1, 1.001}, {0, 1}, {0, 0},
	}}
	result := simplifyPolygon(poly, 1000)
	require.Equal(t, poly, result)
}
