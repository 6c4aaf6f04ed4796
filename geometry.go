package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// The geometry in this file is planar: coordinates are assumed to lie in a
// single distance-preserving projection (e.g. UTM meters), so Euclidean
// distance is meaningful everywhere. Polygons are simple; only the outer
// ring participates in intersection tests.

// centroidOf returns the area-weighted centroid of a polygon.
func centroidOf(poly orb.Polygon) orb.Point {
	c, _ := planar.CentroidArea(poly)
	return c
}

// direction calculates the cross product to determine the orientation of
// p3 relative to the segment p1->p2.
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment checks if collinear point q lies on segment pr.
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}

// segmentsIntersect checks if segments p1-p2 and p3-p4 intersect.
// Touching configurations count: shared endpoints, endpoint-on-segment and
// collinear overlap all report true.
func segmentsIntersect(p1, p2, p3, p4 orb.Point) bool {
	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// pointOnRing checks if a point lies on an edge of the ring.
func pointOnRing(ring orb.Ring, p orb.Point) bool {
	for i := 0; i < len(ring)-1; i++ {
		if direction(ring[i], ring[i+1], p) == 0 && onSegment(ring[i], ring[i+1], p) {
			return true
		}
	}
	return false
}

// pointInOrOnPolygon checks if a point lies inside the polygon or exactly
// on its outer ring.
func pointInOrOnPolygon(poly orb.Polygon, p orb.Point) bool {
	if len(poly) == 0 {
		return false
	}
	if pointOnRing(poly[0], p) {
		return true
	}
	return planar.PolygonContains(poly, p)
}

// polygonsOverlap checks if two polygons share any point, boundary contact
// included. Covers partial overlap, full containment either way, and edge
// or vertex touching.
func polygonsOverlap(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	ra, rb := a[0], b[0]

	for _, v := range ra {
		if pointInOrOnPolygon(b, v) {
			return true
		}
	}
	for _, v := range rb {
		if pointInOrOnPolygon(a, v) {
			return true
		}
	}
	for i := 0; i < len(ra)-1; i++ {
		for j := 0; j < len(rb)-1; j++ {
			if segmentsIntersect(ra[i], ra[i+1], rb[j], rb[j+1]) {
				return true
			}
		}
	}
	return false
}

// rotatePoint rotates p about origin by the given angle in degrees,
// counter-clockwise positive.
func rotatePoint(p, origin orb.Point, degrees float64) orb.Point {
	rad := degrees * math.Pi / 180.0
	sin, cos := math.Sin(rad), math.Cos(rad)
	dx := p[0] - origin[0]
	dy := p[1] - origin[1]
	return orb.Point{
		origin[0] + dx*cos - dy*sin,
		origin[1] + dx*sin + dy*cos,
	}
}

// rotatePolygon returns a copy of the polygon rotated about origin by the
// given angle in degrees, counter-clockwise positive.
func rotatePolygon(poly orb.Polygon, origin orb.Point, degrees float64) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, ring := range poly {
		r := make(orb.Ring, len(ring))
		for j, p := range ring {
			r[j] = rotatePoint(p, origin, degrees)
		}
		out[i] = r
	}
	return out
}

// signedArea computes the shoelace area of a closed ring. Positive for
// counter-clockwise orientation.
func signedArea(ring orb.Ring) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i][0]*ring[i+1][1] - ring[i+1][0]*ring[i][1]
	}
	return sum / 2
}

// ccwRing returns the ring in counter-clockwise orientation, copying only
// when a reversal is needed.
func ccwRing(ring orb.Ring) orb.Ring {
	if signedArea(ring) >= 0 {
		return ring
	}
	out := make(orb.Ring, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// edgeSide reports on which side of the directed edge a->b point p lies:
// positive left, negative right, zero on the edge line.
func edgeSide(a, b, p orb.Point) float64 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

// lineSegmentCrossing returns the point where segment p-q crosses the
// infinite line through a->b. Callers guarantee p and q straddle the line.
func lineSegmentCrossing(a, b, p, q orb.Point) orb.Point {
	d1 := edgeSide(a, b, p)
	d2 := edgeSide(a, b, q)
	t := d1 / (d1 - d2)
	return orb.Point{
		p[0] + t*(q[0]-p[0]),
		p[1] + t*(q[1]-p[1]),
	}
}

// clipRingToConvex intersects an arbitrary simple subject ring with a
// convex clipper ring using Sutherland-Hodgman. Returns nil when the
// intersection is empty or degenerate. The result ring is closed.
func clipRingToConvex(subject, clipper orb.Ring) orb.Ring {
	if len(subject) < 4 || len(clipper) < 4 {
		return nil
	}

	clip := ccwRing(clipper)
	out := make(orb.Ring, 0, len(subject))
	out = append(out, subject[:len(subject)-1]...) // drop closing point

	for i := 0; i < len(clip)-1 && len(out) > 0; i++ {
		a, b := clip[i], clip[i+1]
		input := out
		out = make(orb.Ring, 0, len(input)+4)

		prev := input[len(input)-1]
		prevInside := edgeSide(a, b, prev) >= 0
		for _, cur := range input {
			curInside := edgeSide(a, b, cur) >= 0
			if curInside {
				if !prevInside {
					out = append(out, lineSegmentCrossing(a, b, prev, cur))
				}
				out = append(out, cur)
			} else if prevInside {
				out = append(out, lineSegmentCrossing(a, b, prev, cur))
			}
			prev, prevInside = cur, curInside
		}
	}

	if len(out) < 3 {
		return nil
	}
	out = append(out, out[0])
	if math.Abs(signedArea(out)) < 1e-9 {
		return nil
	}
	return out
}

// expandPolygon fattens the polygon outward by moving every outer-ring
// vertex away from the centroid by delta linear units.
func expandPolygon(poly orb.Polygon, delta float64) orb.Polygon {
	if len(poly) == 0 {
		return poly
	}
	c := centroidOf(poly)
	ring := make(orb.Ring, len(poly[0]))
	for i, p := range poly[0] {
		d := planar.Distance(c, p)
		if d == 0 {
			ring[i] = p
			continue
		}
		scale := (d + delta) / d
		ring[i] = orb.Point{
			c[0] + (p[0]-c[0])*scale,
			c[1] + (p[1]-c[1])*scale,
		}
	}
	return orb.Polygon{ring}
}

// paddedBound grows a bounding box by d on every side.
func paddedBound(b orb.Bound, d float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - d, b.Min[1] - d},
		Max: orb.Point{b.Max[0] + d, b.Max[1] + d},
	}
}

// maxVertexDistance returns the largest distance from p to any ring vertex.
func maxVertexDistance(ring orb.Ring, p orb.Point) float64 {
	var most float64
	for _, v := range ring {
		if d := planar.Distance(p, v); d > most {
			most = d
		}
	}
	return most
}
