package main

import "errors"

// Sentinel errors returned by grid construction, lookup and search.
// All of them are recoverable by the caller; none is process-fatal.
var (
	// ErrInvalidGridSpec indicates a non-positive cell size or a boundary
	// with fewer than three distinct vertices.
	ErrInvalidGridSpec = errors.New("pathplanner: invalid grid spec")
	// ErrUnknownNode indicates a start or end id that is not a passable
	// node of the graph. Wrapped errors name the offending id.
	ErrUnknownNode = errors.New("pathplanner: unknown node")
	// ErrNoPathFound indicates both endpoints exist but no edge sequence
	// connects them.
	ErrNoPathFound = errors.New("pathplanner: no path found")
	// ErrNoPassableCells indicates a nearest-cell lookup against a grid
	// in which every cell is impassable.
	ErrNoPassableCells = errors.New("pathplanner: no passable cells")
)
