package main

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"
)

func TestRemoveContainedObstacles(t *testing.T) {
	big := squarePoly(0, 0, 10)
	inner := squarePoly(2, 2, 1)
	separate := squarePoly(20, 20, 3)

	result := removeContainedObstacles([]orb.Polygon{big, inner, separate})
	require.Len(t, result, 2)
	require.Equal(t, big, result[0])
	require.Equal(t, separate, result[1])
}

func TestRemoveContainedObstaclesIdentical(t *testing.T) {
	a := squarePoly(0, 0, 5)
	b := squarePoly(0, 0, 5)

	result := removeContainedObstacles([]orb.Polygon{a, b})
	require.Len(t, result, 1, "one of two identical polygons survives")
}

func TestRemoveContainedObstaclesOverlapKept(t *testing.T) {
	a := squarePoly(0, 0, 5)
	b := squarePoly(3, 3, 5)

	result := removeContainedObstacles([]orb.Polygon{a, b})
	require.Len(t, result, 2, "partial overlap is not containment")
}

func TestIsPolygonContainedIn(t *testing.T) {
	require.True(t, isPolygonContainedIn(squarePoly(1, 1, 2), squarePoly(0, 0, 10)))
	require.False(t, isPolygonContainedIn(squarePoly(0, 0, 10), squarePoly(1, 1, 2)))
	require.False(t, isPolygonContainedIn(squarePoly(0, 0, 2), squarePoly(1, 1, 2)))
	// Touching the container's ring still counts as contained.
	require.True(t, isPolygonContainedIn(squarePoly(0, 0, 2), squarePoly(0, 0, 10)))
}
