package main

import (
	"math"

	"github.com/paulmach/orb"
)

// SimplifyObstacles reduces every obstacle's vertex count using the
// Douglas-Peucker algorithm. Useful before passability testing when
// obstacles come from high-resolution sources; epsilon is the maximum
// allowed deviation in linear units, and zero or negative epsilon leaves
// the input untouched.
func SimplifyObstacles(polygons []orb.Polygon, epsilon float64) []orb.Polygon {
	if epsilon <= 0 {
		return polygons
	}
	simplified := make([]orb.Polygon, len(polygons))
	for i, poly := range polygons {
		simplified[i] = simplifyPolygon(poly, epsilon)
	}
	return simplified
}

// simplifyPolygon simplifies the outer ring, keeping it closed and
// falling back to the original when the result would degenerate below a
// triangle.
func simplifyPolygon(poly orb.Polygon, epsilon float64) orb.Polygon {
	if len(poly) == 0 || len(poly[0]) <= 4 {
		return poly
	}

	simplified := douglasPeucker(closedRing(poly[0]), epsilon)
	if len(simplified) < 4 {
		return poly
	}

	out := make(orb.Polygon, len(poly))
	out[0] = simplified
	copy(out[1:], poly[1:])
	return out
}

// douglasPeucker implements the Douglas-Peucker line simplification
// algorithm. Endpoints are always kept, so a closed input ring stays
// closed.
func douglasPeucker(points orb.Ring, epsilon float64) orb.Ring {
	if len(points) <= 2 {
		return points
	}

	// Find the point with maximum distance from the line between first and last
	dmax := 0.0
	index := 0
	end := len(points) - 1

	for i := 1; i < end; i++ {
		d := perpendicularDistance(points[i], points[0], points[end])
		if d > dmax {
			index = i
			dmax = d
		}
	}

	if dmax > epsilon {
		left := douglasPeucker(points[:index+1], epsilon)
		right := douglasPeucker(points[index:], epsilon)

		result := make(orb.Ring, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	// All points in between can be discarded
	return orb.Ring{points[0], points[end]}
}

// perpendicularDistance calculates perpendicular distance from point to line
func perpendicularDistance(point, lineStart, lineEnd orb.Point) float64 {
	dx := lineEnd[0] - lineStart[0]
	dy := lineEnd[1] - lineStart[1]

	mag := math.Sqrt(dx*dx + dy*dy)
	if mag > 0 {
		dx /= mag
		dy /= mag
	}

	pvx := point[0] - lineStart[0]
	pvy := point[1] - lineStart[1]

	pvdot := dx*pvx + dy*pvy

	ax := pvx - pvdot*dx
	ay := pvy - pvdot*dy

	return math.Sqrt(ax*ax + ay*ay)
}
