package path

import (
	"io"
	"log/slog"
	"math"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/queue"
	"github.com/natevvv/airway-routing/pkg/slice"
)

type SearchKPIs struct {
	pqPops             int // store the amount of Pops which were performed on the priority queue for the computed search
	pqUpdates          int // store each update or push to the priority queue
	relaxationAttempts int // store the attempt for relaxed edges
	relaxedEdges       int // number of relaxed edges
	numSettledNodes    int // number of settled points
}

type SearchOptions struct {
	useHeuristic       bool                   // flag indicating if heuristic (remaining distance) should be used (AStar implementation)
	heuristicScale     float64                // factor of the great-circle distance used as heuristic
	ignorePoints       map[graph.PointId]bool // points which are never entered
	costUpperBound     float64                // upper bound of cost from origin to destination
	maxNumSettledNodes int                    // maximum number of settled points before search is terminated
}

// UniversalDijkstra implements Dijkstra and A* on the undirected view of the segments.
// Implements the Navigator Interface.
type UniversalDijkstra struct {
	g       *graph.Graph
	minHeap *queue.MinHeap[*DijkstraItem] // priority queue to find the shortest path

	origin      graph.PointId // the origin of the current search
	destination graph.PointId // the destination of the current search

	searchSpace map[graph.PointId]*DijkstraItem // items of all points reached so far
	settled     map[graph.PointId]bool          // points with a final distance

	searchOptions SearchOptions
	searchKPIs    SearchKPIs

	logger *slog.Logger
}

// Reset the kpi
func (kpi *SearchKPIs) Reset() {
	kpi.pqPops = 0
	kpi.pqUpdates = 0
	kpi.relaxationAttempts = 0
	kpi.relaxedEdges = 0
	kpi.numSettledNodes = 0
}

// Create a new Dijkstra instance with the given graph g
func NewUniversalDijkstra(g *graph.Graph) *UniversalDijkstra {
	options := SearchOptions{
		heuristicScale:     0.99,
		costUpperBound:     math.Inf(1),
		maxNumSettledNodes: math.MaxInt,
		ignorePoints:       make(map[graph.PointId]bool),
	}
	return &UniversalDijkstra{
		g:             g,
		searchOptions: options,
		origin:        NoPoint,
		destination:   NoPoint,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Compute the shortest path from the origin to the destination.
// It returns the length of the found path
// If no path was found, it returns -1
func (d *UniversalDijkstra) ComputeShortestPath(origin, destination graph.PointId) float64 {
	d.initializeSearch(origin, destination)
	if !d.g.HasPoint(origin) || !d.g.HasPoint(destination) {
		d.logger.Debug("unknown endpoint", "origin", origin, "destination", destination)
		return -1
	}

	d.logger.Debug("new search", "origin", origin, "destination", destination, "heuristic", d.searchOptions.useHeuristic)

	d.minHeap.Push(NewDijkstraItem(origin, 0, NoPoint, d.heuristicValue(origin)))
	d.searchSpace[origin] = d.minHeap.Peek()

	for d.minHeap.Len() > 0 {
		currentNode := d.minHeap.Pop()
		d.searchKPIs.pqPops++
		d.settleNode(currentNode)

		if currentNode.distance > d.searchOptions.costUpperBound || d.searchKPIs.numSettledNodes > d.searchOptions.maxNumSettledNodes {
			// Each following point exceeds the max allowed cost or the number of allowed points is reached
			d.logger.Debug("exceeded limits",
				"costUpperBound", d.searchOptions.costUpperBound,
				"cost", currentNode.distance,
				"maxSettled", d.searchOptions.maxNumSettledNodes,
				"settled", d.searchKPIs.numSettledNodes)
			return -1
		}

		if currentNode.pointId == destination {
			d.logger.Debug("found path", "origin", origin, "destination", destination, "distance", currentNode.distance)
			return currentNode.distance
		}

		d.relaxEdges(currentNode)
	}

	d.logger.Debug("no path found", "origin", origin, "destination", destination)
	return -1
}

// Get the path of a previous computation. This contains the point ids which lie on the path from origin to destination
func (d *UniversalDijkstra) GetPath(origin, destination graph.PointId) []graph.PointId {
	path := make([]graph.PointId, 0)
	if origin != d.origin || destination != d.destination || !d.settled[destination] {
		// no path found
		return path
	}
	for pointId := destination; pointId != NoPoint; pointId = d.searchSpace[pointId].predecessor {
		path = append(path, pointId)
	}
	// reverse path (to create the correct direction)
	slice.ReverseInPlace(path)
	return path
}

// Returns the search space of a previous computation. This contains all items which were settled.
func (d *UniversalDijkstra) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, len(d.settled))
	for _, pointId := range d.g.PointIds() {
		if d.settled[pointId] {
			searchSpace = append(searchSpace, d.searchSpace[pointId])
		}
	}
	return searchSpace
}

// Initialize a new search
// This resets the search space and settled points (and all other leftovers of a previous search)
func (d *UniversalDijkstra) initializeSearch(origin, destination graph.PointId) {
	d.origin = origin
	d.destination = destination
	d.searchSpace = make(map[graph.PointId]*DijkstraItem)
	d.settled = make(map[graph.PointId]bool)
	d.searchKPIs.Reset()
	d.minHeap = queue.NewMinHeap[*DijkstraItem](nil)
}

// Settle the given point item
func (d *UniversalDijkstra) settleNode(node *DijkstraItem) {
	d.searchKPIs.numSettledNodes++
	d.settled[node.pointId] = true
}

// Relax the Edges for the given point item and add the new points to the MinPath priority queue
func (d *UniversalDijkstra) relaxEdges(node *DijkstraItem) {
	for _, arc := range d.g.Neighbors(node.pointId) {
		d.searchKPIs.relaxationAttempts++
		successor := arc.Destination()

		if d.searchOptions.ignorePoints[successor] || d.settled[successor] || !d.g.HasPoint(successor) {
			continue
		}

		cost := node.distance + arc.Cost()
		if item, ok := d.searchSpace[successor]; !ok {
			nextNode := NewDijkstraItem(successor, cost, node.pointId, d.heuristicValue(successor))
			d.searchSpace[successor] = nextNode
			d.minHeap.Push(nextNode)
			d.searchKPIs.pqUpdates++
		} else if cost < item.distance {
			item.distance = cost
			item.predecessor = node.pointId
			d.minHeap.Update(item)
			d.searchKPIs.pqUpdates++
		}
		d.searchKPIs.relaxedEdges++
	}
}

// Use the great-circle distance to the destination as heuristic (A*)
func (d *UniversalDijkstra) SetUseHeuristic(useHeuristic bool) {
	d.searchOptions.useHeuristic = useHeuristic
}

// Set the factor for the heuristic. Values above 1 make the search faster but not optimal
func (d *UniversalDijkstra) SetHeuristicScale(scale float64) {
	d.searchOptions.heuristicScale = scale
}

// Stop the search (without result) once a point with a higher distance is settled
func (d *UniversalDijkstra) SetCostUpperBound(costUpperBound float64) {
	d.searchOptions.costUpperBound = costUpperBound
}

// Stop the search (without result) after settling this many points
func (d *UniversalDijkstra) SetMaxNumSettledNodes(maxNumSettledNodes int) {
	d.searchOptions.maxNumSettledNodes = maxNumSettledNodes
}

// Set the points which must not be part of a path
func (d *UniversalDijkstra) SetIgnorePoints(points []graph.PointId) {
	d.searchOptions.ignorePoints = make(map[graph.PointId]bool, len(points))
	for _, p := range points {
		d.searchOptions.ignorePoints[p] = true
	}
}

func (d *UniversalDijkstra) SetLogger(logger *slog.Logger) {
	d.logger = logger
}

// Get the number of settled points
func (d *UniversalDijkstra) GetSettledNodesCount() int { return d.searchKPIs.numSettledNodes }

// Get the number of pq pops
func (d *UniversalDijkstra) GetPqPops() int { return d.searchKPIs.pqPops }

// Get the number of relaxed edges
func (d *UniversalDijkstra) GetEdgeRelaxations() int { return d.searchKPIs.relaxedEdges }

// Get the number of attempted edge relaxations
func (d *UniversalDijkstra) GetRelaxationAttempts() int { return d.searchKPIs.relaxationAttempts }

// Get the number of pq updates
func (d *UniversalDijkstra) GetPqUpdates() int { return d.searchKPIs.pqUpdates }

// Get the used graph
func (d *UniversalDijkstra) GetGraph() *graph.Graph { return d.g }

// helper function for AStar to calculate the heuristic value from the point to the destination
// Returns 0 if useHeuristic is false
func (d *UniversalDijkstra) heuristicValue(pointId graph.PointId) float64 {
	if !d.searchOptions.useHeuristic {
		return 0
	}
	from, _ := d.g.Point(pointId)
	to, _ := d.g.Point(d.destination)
	return GeographicHeuristic(d.searchOptions.heuristicScale)(from, to)
}
