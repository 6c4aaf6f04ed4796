package main

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// decodePolygons extracts every Polygon (and MultiPolygon member) from a
// GeoJSON document. Accepts a FeatureCollection, a single Feature or a
// bare geometry.
func decodePolygons(data []byte) ([]orb.Polygon, error) {
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil && len(fc.Features) > 0 {
		var polygons []orb.Polygon
		for _, f := range fc.Features {
			polygons = append(polygons, polygonsFromGeometry(f.Geometry)...)
		}
		return polygons, nil
	}
	if f, err := geojson.UnmarshalFeature(data); err == nil && f.Geometry != nil {
		return polygonsFromGeometry(f.Geometry), nil
	}
	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("not a GeoJSON feature collection, feature or geometry: %w", err)
	}
	return polygonsFromGeometry(g.Geometry()), nil
}

// polygonsFromGeometry flattens a geometry into its polygons; other
// geometry types are ignored.
func polygonsFromGeometry(g orb.Geometry) []orb.Polygon {
	switch geom := g.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return []orb.Polygon(geom)
	}
	return nil
}

// loadPolygonFile reads one GeoJSON file from disk.
func loadPolygonFile(path string) ([]orb.Polygon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodePolygons(data)
}

// gridFeatureCollection renders a grid snapshot as GeoJSON for the
// presentation layer: one Polygon feature per cell carrying its id,
// passability and centroid.
func gridFeatureCollection(grid *Grid) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range grid.Cells {
		cell := &grid.Cells[i]
		f := geojson.NewFeature(cell.Geometry)
		f.Properties["id"] = cell.ID
		f.Properties["passable"] = cell.Passable
		f.Properties["centroid"] = []float64{cell.Centroid[0], cell.Centroid[1]}
		fc.Append(f)
	}
	return fc
}

// graphFeatureCollection renders graph edges as LineString features for
// visualization, each undirected edge exactly once.
func graphFeatureCollection(graph *Graph) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for from, edges := range graph.Edges {
		for _, e := range edges {
			if e.To <= from {
				continue
			}
			f := geojson.NewFeature(orb.LineString{graph.Nodes[from], graph.Nodes[e.To]})
			f.Properties["from"] = from
			f.Properties["to"] = e.To
			f.Properties["weight"] = e.Cost
			fc.Append(f)
		}
	}
	return fc
}
