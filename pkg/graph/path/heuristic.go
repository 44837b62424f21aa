package path

import "github.com/natevvv/airway-routing/pkg/graph"

// Estimate of the remaining cost from current to destination
type Heuristic func(current, destination graph.NavPoint) float64

// The default heuristic of the fringe search. A constant does not change the order
// of the candidates, which makes the search cost ordered.
func ConstantHeuristic(value float64) Heuristic {
	return func(current, destination graph.NavPoint) float64 {
		return value
	}
}

// Great-circle distance in km to the destination, multiplied by scale.
// The result stays optimal as long as the scaled distance never exceeds the
// remaining segment weights.
func GeographicHeuristic(scale float64) Heuristic {
	return func(current, destination graph.NavPoint) float64 {
		return scale * current.Point.DistanceTo(destination.Point)
	}
}
