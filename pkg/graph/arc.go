package graph

// An Arc is one traversal direction of a segment, seen from the point it leaves.
type Arc struct {
	To       PointId
	Distance float64
	Segment  int // index of the segment in Graph.Segments()
}

func MakeArc(to PointId, distance float64, segment int) Arc {
	return Arc{To: to, Distance: distance, Segment: segment}
}

func (a Arc) Destination() PointId {
	return a.To
}

func (a Arc) Cost() float64 {
	return a.Distance
}
