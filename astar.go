package main

import (
	"container/heap"
	"fmt"

	"github.com/paulmach/orb/planar"
)

// searchNode represents a node in the A* search over the cell graph
type searchNode struct {
	id     int     // id of the cell in the graph
	g      float64 // cost from start to this node
	h      float64 // heuristic cost from this node to the goal
	f      float64 // total cost (g + h)
	parent *searchNode
	index  int // index in the heap
}

// searchQueue implements heap.Interface for the A* open set
type searchQueue []*searchNode

func (q searchQueue) Len() int { return len(q) }

func (q searchQueue) Less(i, j int) bool {
	return q[i].f < q[j].f
}

func (q searchQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *searchQueue) Push(x interface{}) {
	n := len(*q)
	node := x.(*searchNode)
	node.index = n
	*q = append(*q, node)
}

func (q *searchQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[0 : n-1]
	return node
}

// FindPath computes the minimum-weight path between two passable cells
// using A*. The heuristic is the straight-line distance from a node's
// centroid to the goal centroid; every edge weight is itself a Euclidean
// segment length, so the heuristic never overestimates the remaining cost
// and the result is optimal.
//
// Returns ErrUnknownNode (naming the offending id) when an endpoint is
// not a node of the graph, a single-element path when start equals end,
// and ErrNoPathFound when the endpoints lie in disconnected components.
func FindPath(graph *Graph, startID, endID int) ([]int, error) {
	if graph == nil {
		return nil, fmt.Errorf("start node %d: %w", startID, ErrUnknownNode)
	}
	startPoint, ok := graph.Nodes[startID]
	if !ok {
		return nil, fmt.Errorf("start node %d: %w", startID, ErrUnknownNode)
	}
	goal, ok := graph.Nodes[endID]
	if !ok {
		return nil, fmt.Errorf("end node %d: %w", endID, ErrUnknownNode)
	}
	if startID == endID {
		return []int{startID}, nil
	}

	openSet := &searchQueue{}
	heap.Init(openSet)

	start := &searchNode{id: startID, h: planar.Distance(startPoint, goal)}
	start.f = start.h
	heap.Push(openSet, start)

	closedSet := make(map[int]bool)
	openByID := map[int]*searchNode{startID: start}

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*searchNode)
		delete(openByID, current.id)

		if current.id == endID {
			// Reconstruct path
			path := make([]int, 0)
			for node := current; node != nil; node = node.parent {
				path = append(path, node.id)
			}
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path, nil
		}

		closedSet[current.id] = true

		// Explore neighbors
		for _, edge := range graph.Edges[current.id] {
			if closedSet[edge.To] {
				continue
			}

			tentativeG := current.g + edge.Cost

			neighbor, exists := openByID[edge.To]
			if !exists {
				neighbor = &searchNode{
					id:     edge.To,
					g:      tentativeG,
					h:      planar.Distance(graph.Nodes[edge.To], goal),
					parent: current,
				}
				neighbor.f = neighbor.g + neighbor.h
				heap.Push(openSet, neighbor)
				openByID[edge.To] = neighbor
			} else if tentativeG < neighbor.g {
				// Found a better path to this neighbor
				neighbor.g = tentativeG
				neighbor.f = neighbor.g + neighbor.h
				neighbor.parent = current
				heap.Fix(openSet, neighbor.index)
			}
		}
	}

	return nil, fmt.Errorf("no route between nodes %d and %d: %w", startID, endID, ErrNoPathFound)
}

// PathWeight sums the edge weights along a path of node ids. Edges carry
// centroid-to-centroid distances, so consecutive node distances equal the
// corresponding edge costs.
func PathWeight(graph *Graph, path []int) float64 {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		total += planar.Distance(graph.Nodes[path[i]], graph.Nodes[path[i+1]])
	}
	return total
}
