package pbf

import (
	"fmt"
	"math"
)

// Airway is a chain of navigation points imported from one or more OSM ways.
// Legs[i] is the weight between NodeIDs[i] and NodeIDs[i+1], NaN if the way
// carried no distance and the weight has to be derived from the coordinates.
type Airway struct {
	ID         int64
	Designator string
	NodeIDs    []int64
	Legs       []float64
	Tags       map[string]string
}

func newAirway(id int64, designator string, nodeIDs []int64, distance float64, tags map[string]string) *Airway {
	legs := make([]float64, max(len(nodeIDs)-1, 0))
	for i := range legs {
		if distance >= 0 {
			// the distance of the way is split evenly over its legs
			legs[i] = distance / float64(len(legs))
		} else {
			legs[i] = math.NaN()
		}
	}
	return &Airway{ID: id, Designator: designator, NodeIDs: nodeIDs, Legs: legs, Tags: tags}
}

func (a *Airway) String() string {
	return fmt.Sprintf("%v (#%v, %v points)", a.Designator, a.ID, len(a.NodeIDs))
}
