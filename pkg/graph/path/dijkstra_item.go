package path

import (
	"fmt"

	"github.com/natevvv/airway-routing/pkg/graph"
)

// implements queue.Priorizable
type DijkstraItem struct {
	pointId     graph.PointId // point id of this item in the graph
	distance    float64       // distance to origin of this point
	heuristic   float64       // estimated distance from point to destination
	predecessor graph.PointId // point id of the predecessor, NoPoint for the origin
	index       int           // internal usage
}

func NewDijkstraItem(pointId graph.PointId, distance float64, predecessor graph.PointId, heuristic float64) *DijkstraItem {
	return &DijkstraItem{pointId: pointId, distance: distance, predecessor: predecessor, index: -1, heuristic: heuristic}
}

func (item *DijkstraItem) PointId() graph.PointId     { return item.pointId }
func (item *DijkstraItem) Distance() float64          { return item.distance }
func (item *DijkstraItem) Predecessor() graph.PointId { return item.predecessor }
func (item *DijkstraItem) Priority() float64          { return item.distance + item.heuristic }
func (item *DijkstraItem) Index() int                 { return item.index }
func (item *DijkstraItem) SetIndex(index int)         { item.index = index }
func (item *DijkstraItem) String() string {
	return fmt.Sprintf("%v: %v, %v\n", item.index, item.pointId, item.Priority())
}
