package path

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/natevvv/airway-routing/pkg/graph"
)

type EndpointKind int

const (
	PointKind EndpointKind = iota
	AirportKind
)

// Origin or destination of a search: either a point id or an airport code.
type Endpoint struct {
	Kind    EndpointKind
	Point   graph.PointId
	Airport string
}

func PointEndpoint(id graph.PointId) Endpoint {
	return Endpoint{Kind: PointKind, Point: id}
}

func AirportEndpoint(code string) Endpoint {
	return Endpoint{Kind: AirportKind, Airport: code}
}

func (e Endpoint) IsAirport() bool { return e.Kind == AirportKind }

func (e Endpoint) String() string {
	if e.IsAirport() {
		return e.Airport
	}
	return strconv.Itoa(e.Point)
}

// Resolve user input. Text recognized by the matcher is an airport code,
// a number is a point id and everything else is looked up as a point name.
func ParseEndpoint(g *graph.Graph, s string, matcher *graph.AirportMatcher) (Endpoint, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Endpoint{}, fmt.Errorf("empty endpoint")
	}
	if matcher != nil && matcher.Match(s) {
		return AirportEndpoint(s), nil
	}
	if id, err := strconv.Atoi(s); err == nil {
		return PointEndpoint(id), nil
	}
	if g != nil {
		if p, ok := g.PointByName(s); ok {
			return PointEndpoint(p.ID), nil
		}
	}
	return Endpoint{}, fmt.Errorf("unknown endpoint %q", s)
}

// Resolve the endpoint to the point ids a route may start or end at.
// Ids which are not points of the graph are skipped.
func (e Endpoint) resolve(g *graph.Graph, departure bool) ([]graph.PointId, Outcome) {
	if !e.IsAirport() {
		if !g.HasPoint(e.Point) {
			return nil, OutcomeNotFound
		}
		return []graph.PointId{e.Point}, OutcomeFound
	}

	airport := g.Airport(e.Airport)
	if airport == nil {
		return nil, OutcomeNotFound
	}
	candidates := airport.Arrivals
	if departure {
		candidates = airport.Departures
	}
	points := make([]graph.PointId, 0, len(candidates))
	for _, id := range candidates {
		if g.HasPoint(id) {
			points = append(points, id)
		}
	}
	if len(points) == 0 {
		return nil, OutcomeUnreachable
	}
	return points, OutcomeFound
}
