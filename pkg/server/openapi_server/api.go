// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"net/http"
)

// DefaultApiRouter defines the required methods for binding the api requests to a responses for the DefaultApi
// The DefaultApiRouter implementation should parse necessary information from the http request,
// pass the data to a DefaultApiServicer to perform the required actions, then write the service results to the http response.
type DefaultApiRouter interface {
	ComputeRoute(http.ResponseWriter, *http.Request)
	ComputeAlternatives(http.ResponseWriter, *http.Request)
	GetPoints(http.ResponseWriter, *http.Request)
	GetNeighbors(http.ResponseWriter, *http.Request)
	GetNearestPoint(http.ResponseWriter, *http.Request)
	GetAirport(http.ResponseWriter, *http.Request)
	GetSearchSpace(http.ResponseWriter, *http.Request)
	SetNavigator(http.ResponseWriter, *http.Request)
	GetHealth(http.ResponseWriter, *http.Request)
}

// DefaultApiServicer defines the api actions for the DefaultApi service
// This interface intended to stay up to date with the openapi yaml used to generate it,
// while the service implementation can ignored with the .openapi-generator-ignore file
// and updated with the logic required for the API.
type DefaultApiServicer interface {
	ComputeRoute(context.Context, RouteRequest) (ImplResponse, error)
	ComputeAlternatives(context.Context, RouteRequest) (ImplResponse, error)
	GetPoints(context.Context, *BoundingBox) (ImplResponse, error)
	GetNeighbors(context.Context, int64) (ImplResponse, error)
	GetNearestPoint(context.Context, float64, float64) (ImplResponse, error)
	GetAirport(context.Context, string) (ImplResponse, error)
	GetSearchSpace(context.Context) (ImplResponse, error)
	SetNavigator(context.Context, NavigatorRequest) (ImplResponse, error)
	GetHealth(context.Context) (ImplResponse, error)
}

// NavigatorConfig defines the limits the service applies to route queries
type NavigatorConfig struct {
	MaxPaths         int     // default number of alternatives
	MaxMaxPaths      int     // upper bound of a requested number of alternatives, 0 means no bound
	MaxIterations    int     // default pops per point pair of the fringe search
	MaxMaxIterations int     // upper bound of requested pops per point pair, 0 means no bound
	TimeBudgetMs     int64   // default budget of the alternatives search
	MaxTimeBudget    int64   // upper bound of a requested budget in ms
	HeuristicScale   float64 // factor of the geographic heuristic
}
