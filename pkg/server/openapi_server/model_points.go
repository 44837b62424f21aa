// SPDX-License-Identifier: MIT

package openapi_server

type Points struct {
	Waypoints []Waypoint `json:"waypoints"`
}

// BoundingBox restricts a point listing
type BoundingBox struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

type Neighbor struct {
	Waypoint Waypoint `json:"waypoint"`
	Distance float64  `json:"distance"`
}

type Neighbors struct {
	Point     Waypoint   `json:"point"`
	Neighbors []Neighbor `json:"neighbors"`
}

type NearestPoint struct {
	Point Waypoint `json:"point"`
	// Great-circle distance in km
	Distance float64 `json:"distance"`
}

type Airport struct {
	Code       string     `json:"code"`
	Departures []Waypoint `json:"departures"`
	Arrivals   []Waypoint `json:"arrivals"`
}

type Health struct {
	Status    string `json:"status"`
	Navigator string `json:"navigator"`
	Points    int    `json:"points"`
	Segments  int    `json:"segments"`
	Airports  int    `json:"airports"`
}

type ErrorResult struct {
	Message string `json:"message"`
}
