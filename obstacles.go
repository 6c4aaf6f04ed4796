package main

import "github.com/paulmach/orb"

// removeContainedObstacles drops obstacle polygons that are fully
// contained within another obstacle. A contained polygon cannot change
// any cell's passability, and dropping it cuts the per-cell intersection
// work during grid construction.
func removeContainedObstacles(polygons []orb.Polygon) []orb.Polygon {
	if len(polygons) <= 1 {
		return polygons
	}

	contained := make([]bool, len(polygons))

	// Check each polygon against all others
	for i := 0; i < len(polygons); i++ {
		if contained[i] {
			continue
		}

		for j := 0; j < len(polygons); j++ {
			if i == j || contained[j] {
				continue
			}

			if isPolygonContainedIn(polygons[i], polygons[j]) {
				contained[i] = true
				break
			}

			if isPolygonContainedIn(polygons[j], polygons[i]) {
				contained[j] = true
			}
		}
	}

	result := make([]orb.Polygon, 0, len(polygons))
	for i := range polygons {
		if !contained[i] {
			result = append(result, polygons[i])
		}
	}

	return result
}

// isPolygonContainedIn checks if polygon a is fully contained within polygon b
func isPolygonContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	// Quick bounding box check first
	if !boundContained(a.Bound(), b.Bound()) {
		return false
	}

	// Check if all vertices of a are inside b
	for _, vertex := range a[0] {
		if !pointInOrOnPolygon(b, vertex) {
			return false
		}
	}

	return true
}

// boundContained checks if bounding box a is contained in bounding box b
func boundContained(a, b orb.Bound) bool {
	return a.Min[0] >= b.Min[0] && a.Max[0] <= b.Max[0] &&
		a.Min[1] >= b.Min[1] && a.Max[1] <= b.Max[1]
}
