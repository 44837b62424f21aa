package path

import (
	"math"

	"github.com/natevvv/airway-routing/pkg/graph"
	"github.com/natevvv/airway-routing/pkg/queue"
	"github.com/natevvv/airway-routing/pkg/slice"
)

// Plain Dijkstra over the undirected view of the segments.
// Implements the Navigator interface.
type Dijkstra struct {
	g                  *graph.Graph
	dijkstraItems      map[graph.PointId]*queue.Item
	settled            map[graph.PointId]bool
	pqPops             int
	pqUpdates          int
	relaxationAttempts int
	relaxedEdges       int
}

func NewDijkstra(g *graph.Graph) *Dijkstra {
	return &Dijkstra{g: g}
}

// Compute the shortest path from start to end.
// Returns the point sequence and its weight, ([start], 0) if start and end are the
// same point and (nil, 0) if one of them is unknown or end is unreachable.
func ShortestPath(g *graph.Graph, start, end graph.PointId) ([]graph.PointId, float64) {
	d := NewDijkstra(g)
	length := d.ComputeShortestPath(start, end)
	if length < 0 {
		return nil, 0
	}
	return d.GetPath(start, end), length
}

// Compute the shortest path from the origin to the destination.
// Returns the length of the path, -1 if there is none.
func (d *Dijkstra) ComputeShortestPath(origin, destination graph.PointId) float64 {
	d.dijkstraItems = make(map[graph.PointId]*queue.Item, d.g.PointCount())
	d.settled = make(map[graph.PointId]bool)
	d.pqPops = 0
	d.pqUpdates = 0
	d.relaxationAttempts = 0
	d.relaxedEdges = 0

	if !d.g.HasPoint(origin) || !d.g.HasPoint(destination) {
		return -1
	}

	originItem := queue.NewQueueItem(origin, 0, NoPoint)
	d.dijkstraItems[origin] = originItem
	pq := queue.NewQueue(originItem)

	for pq.Len() > 0 {
		currentPqItem := pq.PopItem()
		currentPointId := currentPqItem.ItemId
		d.settled[currentPointId] = true
		d.pqPops++

		if currentPointId == destination {
			break
		}

		for _, arc := range d.g.Neighbors(currentPointId) {
			d.relaxationAttempts++
			successor := arc.Destination()
			if d.settled[successor] || !d.g.HasPoint(successor) {
				continue
			}

			newPriority := currentPqItem.Priority + arc.Cost()
			item, ok := d.dijkstraItems[successor]
			if !ok {
				item = queue.NewQueueItem(successor, math.Inf(1), currentPointId)
				d.dijkstraItems[successor] = item
			}
			if pq.PushOrDecrease(item, newPriority, currentPointId) {
				d.pqUpdates++
			}
			d.relaxedEdges++
		}
	}

	if !d.settled[destination] {
		return -1
	}
	return d.dijkstraItems[destination].Priority
}

// Get the path of a previous computation
func (d *Dijkstra) GetPath(origin, destination graph.PointId) []graph.PointId {
	path := make([]graph.PointId, 0) // by default, a non-existing path is an empty slice
	if !d.settled[destination] {
		return path
	}
	for pointId := destination; pointId != NoPoint; pointId = d.dijkstraItems[pointId].Predecessor {
		path = append(path, pointId)
	}
	slice.ReverseInPlace(path)
	if path[0] != origin {
		return make([]graph.PointId, 0)
	}
	return path
}

// Returns the settled items of the previous computation
func (d *Dijkstra) GetSearchSpace() []*DijkstraItem {
	searchSpace := make([]*DijkstraItem, 0, len(d.settled))
	for _, pointId := range d.g.PointIds() {
		if d.settled[pointId] {
			item := d.dijkstraItems[pointId]
			searchSpace = append(searchSpace, NewDijkstraItem(pointId, item.Priority, item.Predecessor, 0))
		}
	}
	return searchSpace
}

func (d *Dijkstra) GetPqPops() int             { return d.pqPops }
func (d *Dijkstra) GetPqUpdates() int          { return d.pqUpdates }
func (d *Dijkstra) GetEdgeRelaxations() int    { return d.relaxedEdges }
func (d *Dijkstra) GetRelaxationAttempts() int { return d.relaxationAttempts }
func (d *Dijkstra) GetGraph() *graph.Graph     { return d.g }
