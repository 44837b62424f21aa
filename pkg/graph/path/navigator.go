package path

import (
	"math"

	"github.com/natevvv/airway-routing/pkg/graph"
)

// Marks the missing predecessor of an origin
const NoPoint graph.PointId = math.MinInt

type Navigator interface {
	GetPath(origin, destination graph.PointId) []graph.PointId     // Get the path of a previous computation. This contains the point ids which lie on the path from origin to destination
	ComputeShortestPath(origin, destination graph.PointId) float64 // Compute the shortest path from the origin to the destination. Returns -1 if there is none
	GetSearchSpace() []*DijkstraItem                               // Returns the search space of a previous computation. This contains all items which were settled.
	GetPqPops() int                                                // Returns the amount of priority queue/heap pops which were performed during the search
	GetPqUpdates() int                                             // Get the number of pq updates
	GetEdgeRelaxations() int                                       // Get the number of relaxed edges
	GetRelaxationAttempts() int                                    // Get the number of attempted edge relaxations (some may early terminated)
	GetGraph() *graph.Graph                                        // Get the used graph
}
