package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/paulmach/orb"
)

// defaultCellSize is used when a build request omits cellSize and for the
// startup preload.
const defaultCellSize = 25.0

// planSnapshot pairs a grid with the graph built from it. Snapshots are
// immutable; a rebuild swaps the whole pair so readers never observe a
// grid/graph mismatch.
type planSnapshot struct {
	grid  *Grid
	graph *Graph
}

var (
	currentPlan *planSnapshot
	planMutex   sync.RWMutex
)

type BuildGridRequest struct {
	Boundary          json.RawMessage `json:"boundary"`                    // GeoJSON: the planning area
	Obstacles         json.RawMessage `json:"obstacles,omitempty"`         // GeoJSON: impassable zones
	CellSize          float64         `json:"cellSize,omitempty"`          // cell edge length in linear units
	Rotation          float64         `json:"rotation,omitempty"`          // degrees, counter-clockwise
	Clip              bool            `json:"clip,omitempty"`              // truncate cells to the boundary
	Intersect         bool            `json:"intersect,omitempty"`         // drop cells off the boundary
	SimplifyTolerance float64         `json:"simplifyTolerance,omitempty"` // Douglas-Peucker epsilon for obstacles
}

type RouteEndpoint struct {
	CellID *int       `json:"cellId,omitempty"`
	Point  *orb.Point `json:"point,omitempty"` // [x, y] in grid coordinates
}

type RouteRequest struct {
	Start RouteEndpoint `json:"start"`
	End   RouteEndpoint `json:"end"`
}

type RouteResponse struct {
	Success     bool        `json:"success"`
	Path        []int       `json:"path,omitempty"`
	Waypoints   []orb.Point `json:"waypoints,omitempty"`
	TotalWeight float64     `json:"totalWeight,omitempty"`
	Message     string      `json:"message,omitempty"`
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// newPlanSnapshot runs the planning pipeline on decoded geometry:
// obstacle simplification, grid construction, optional refinement and
// graph construction.
func newPlanSnapshot(boundary orb.Polygon, obstacles []orb.Polygon, req BuildGridRequest) (*planSnapshot, error) {
	obstacles = SimplifyObstacles(obstacles, req.SimplifyTolerance)

	cellSize := req.CellSize
	if cellSize == 0 {
		cellSize = defaultCellSize
	}

	grid, err := NewGrid(boundary, cellSize, req.Rotation, obstacles)
	if err != nil {
		return nil, err
	}
	if req.Clip {
		grid = grid.Clip()
	}
	if req.Intersect {
		grid = grid.Intersect()
	}
	return &planSnapshot{grid: grid, graph: BuildCellGraph(grid)}, nil
}

// buildPlan decodes request geometry and runs the pipeline.
func buildPlan(req BuildGridRequest) (*planSnapshot, error) {
	boundaries, err := decodePolygons(req.Boundary)
	if err != nil {
		return nil, fmt.Errorf("boundary: %w", err)
	}
	if len(boundaries) == 0 {
		return nil, fmt.Errorf("boundary: no polygon found: %w", ErrInvalidGridSpec)
	}

	var obstacles []orb.Polygon
	if len(req.Obstacles) > 0 {
		obstacles, err = decodePolygons(req.Obstacles)
		if err != nil {
			return nil, fmt.Errorf("obstacles: %w", err)
		}
	}

	return newPlanSnapshot(boundaries[0], obstacles, req)
}

// POST /buildGrid - build a grid and graph snapshot from a boundary
func buildGridHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("🗺️  Build grid request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildGridRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	log.Printf("   Cell size: %.2f, rotation: %.2f°\n", req.CellSize, req.Rotation)
	log.Printf("   Clip: %v, intersect: %v\n", req.Clip, req.Intersect)

	snapshot, err := buildPlan(req)
	if err != nil {
		log.Printf("❌ Build failed: %v\n", err)
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidGridSpec) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		log.Println("========================================")
		return
	}

	planMutex.Lock()
	currentPlan = snapshot
	planMutex.Unlock()

	passable := snapshot.grid.PassableCount()
	log.Printf("✅ Grid built: %d cells (%d passable), %d graph nodes\n",
		len(snapshot.grid.Cells), passable, len(snapshot.graph.Nodes))
	log.Println("========================================")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":       true,
		"numCells":      len(snapshot.grid.Cells),
		"numPassable":   passable,
		"numGraphNodes": len(snapshot.graph.Nodes),
		"cellSize":      snapshot.grid.CellSize,
		"rotation":      snapshot.grid.Rotation,
	})
}

// resolveEndpoint maps a request endpoint to a cell id, snapping points
// to the nearest passable cell.
func resolveEndpoint(grid *Grid, ep RouteEndpoint) (int, error) {
	switch {
	case ep.CellID != nil:
		return *ep.CellID, nil
	case ep.Point != nil:
		return grid.ClosestCellID(*ep.Point)
	default:
		return 0, errors.New("endpoint needs a cellId or a point")
	}
}

// POST /route - compute the shortest passable path between two cells
func routeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("========================================")
	log.Println("📍 Route request received")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	planMutex.RLock()
	snapshot := currentPlan
	planMutex.RUnlock()

	if snapshot == nil {
		log.Println("❌ No grid available")
		http.Error(w, "No grid built. Call /buildGrid first", http.StatusBadRequest)
		log.Println("========================================")
		return
	}

	w.Header().Set("Content-Type", "application/json")

	startID, err := resolveEndpoint(snapshot.grid, req.Start)
	if err != nil {
		log.Printf("❌ Start endpoint: %v\n", err)
		json.NewEncoder(w).Encode(RouteResponse{Success: false, Message: "start: " + err.Error()})
		log.Println("========================================")
		return
	}
	endID, err := resolveEndpoint(snapshot.grid, req.End)
	if err != nil {
		log.Printf("❌ End endpoint: %v\n", err)
		json.NewEncoder(w).Encode(RouteResponse{Success: false, Message: "end: " + err.Error()})
		log.Println("========================================")
		return
	}

	log.Printf("   Start cell: %d\n", startID)
	log.Printf("   End cell:   %d\n", endID)

	path, err := FindPath(snapshot.graph, startID, endID)
	if err != nil {
		// No-path and unknown-node are distinct, recoverable outcomes;
		// pass the typed message through so the caller knows what to fix.
		log.Printf("❌ %v\n", err)
		json.NewEncoder(w).Encode(RouteResponse{Success: false, Message: err.Error()})
		log.Println("========================================")
		return
	}

	waypoints := make([]orb.Point, len(path))
	for i, id := range path {
		waypoints[i] = snapshot.graph.Nodes[id]
	}
	weight := PathWeight(snapshot.graph, path)

	log.Printf("✅ Path found: %d cells, total weight %.2f\n", len(path), weight)
	log.Println("========================================")

	json.NewEncoder(w).Encode(RouteResponse{
		Success:     true,
		Path:        path,
		Waypoints:   waypoints,
		TotalWeight: weight,
	})
}

// GET /gridCells - current grid as GeoJSON for the presentation layer
func gridCellsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planMutex.RLock()
	snapshot := currentPlan
	planMutex.RUnlock()

	if snapshot == nil {
		http.Error(w, "No grid built. Call /buildGrid first", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gridFeatureCollection(snapshot.grid))
}

// GET /graphLines - graph edges as GeoJSON line strings for visualization
func graphLinesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	planMutex.RLock()
	snapshot := currentPlan
	planMutex.RUnlock()

	if snapshot == nil {
		http.Error(w, "No grid built. Call /buildGrid first", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(graphFeatureCollection(snapshot.graph))
}

// GET /health - health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	planMutex.RLock()
	snapshot := currentPlan
	planMutex.RUnlock()

	status := "ready"
	numCells := 0
	numNodes := 0
	if snapshot == nil {
		status = "waiting for grid"
	} else {
		numCells = len(snapshot.grid.Cells)
		numNodes = len(snapshot.graph.Nodes)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":   status,
		"hasGrid":  snapshot != nil,
		"numCells": numCells,
		"numNodes": numNodes,
	})
}

func main() {
	log.Println("========================================")
	log.Println("🚀 Grid-Based Path Planner Server")
	log.Println("========================================")
	log.Println("Checking for boundary data on disk...")

	if boundaries, err := loadPolygonFile("data/boundary.geojson"); err == nil && len(boundaries) > 0 {
		obstacles, _ := loadPolygonFile("data/obstacles.geojson")
		snapshot, err := newPlanSnapshot(boundaries[0], obstacles, BuildGridRequest{Intersect: true})
		if err != nil {
			log.Printf("⚠️  Preload failed: %v\n", err)
		} else {
			planMutex.Lock()
			currentPlan = snapshot
			planMutex.Unlock()
			log.Printf("✅ Preloaded grid from data/: %d cells, %d graph nodes\n",
				len(snapshot.grid.Cells), len(snapshot.graph.Nodes))
			log.Printf("   Obstacles: %d polygons\n", len(obstacles))
		}
	} else {
		log.Println("ℹ️  No data/boundary.geojson found (this is normal on first run)")
		log.Println("   Call /buildGrid to create a grid")
	}
	log.Println("")

	http.HandleFunc("/buildGrid", corsMiddleware(buildGridHandler))
	http.HandleFunc("/route", corsMiddleware(routeHandler))
	http.HandleFunc("/gridCells", corsMiddleware(gridCellsHandler))
	http.HandleFunc("/graphLines", corsMiddleware(graphLinesHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Println("Server starting on :8080")
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /buildGrid   - Build the cell grid and adjacency graph")
	log.Println("  POST /route       - Compute a path between two cells or points")
	log.Println("  GET  /gridCells   - Current grid as GeoJSON")
	log.Println("  GET  /graphLines  - Graph edges as GeoJSON")
	log.Println("  GET  /health      - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	log.Println("")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		log.Fatal(err)
	}
}
