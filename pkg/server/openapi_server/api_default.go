package openapi_server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

// DefaultApiController binds http requests to an api service and writes the service results to the http response
type DefaultApiController struct {
	service      DefaultApiServicer
	errorHandler ErrorHandler
}

// DefaultApiOption for how the controller is set up.
type DefaultApiOption func(*DefaultApiController)

// WithDefaultApiErrorHandler inject ErrorHandler into controller
func WithDefaultApiErrorHandler(h ErrorHandler) DefaultApiOption {
	return func(c *DefaultApiController) {
		c.errorHandler = h
	}
}

// NewDefaultApiController creates a default api controller
func NewDefaultApiController(s DefaultApiServicer, opts ...DefaultApiOption) Router {
	controller := &DefaultApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}

	for _, opt := range opts {
		opt(controller)
	}

	return controller
}

// Routes returns all of the api route for the DefaultApiController
func (c *DefaultApiController) Routes() Routes {
	return Routes{
		{
			"ComputeRoute",
			strings.ToUpper("Post"),
			"/routes",
			c.ComputeRoute,
		},
		{
			"ComputeAlternatives",
			strings.ToUpper("Post"),
			"/routes/alternatives",
			c.ComputeAlternatives,
		},
		{
			"GetPoints",
			strings.ToUpper("Get"),
			"/points",
			c.GetPoints,
		},
		{
			"GetNearestPoint",
			strings.ToUpper("Get"),
			"/points/nearest",
			c.GetNearestPoint,
		},
		{
			"GetNeighbors",
			strings.ToUpper("Get"),
			"/points/{id}/neighbors",
			c.GetNeighbors,
		},
		{
			"GetAirport",
			strings.ToUpper("Get"),
			"/airports/{code}",
			c.GetAirport,
		},
		{
			"GetSearchSpace",
			strings.ToUpper("Get"),
			"/searchSpace",
			c.GetSearchSpace,
		},
		{
			"SetNavigator",
			strings.ToUpper("Post"),
			"/navigator",
			c.SetNavigator,
		},
		{
			"GetHealth",
			strings.ToUpper("Get"),
			"/health",
			c.GetHealth,
		},
	}
}

// ComputeRoute - Compute a new route
func (c *DefaultApiController) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	routeRequestParam, ok := c.decodeRouteRequest(w, r)
	if !ok {
		return
	}
	result, err := c.service.ComputeRoute(r.Context(), routeRequestParam)
	c.writeResult(w, r, "POST", result, err)
}

// ComputeAlternatives - Compute diverse alternative routes
func (c *DefaultApiController) ComputeAlternatives(w http.ResponseWriter, r *http.Request) {
	routeRequestParam, ok := c.decodeRouteRequest(w, r)
	if !ok {
		return
	}
	result, err := c.service.ComputeAlternatives(r.Context(), routeRequestParam)
	c.writeResult(w, r, "POST", result, err)
}

// GetPoints - List all points, optionally restricted to a bounding box
func (c *DefaultApiController) GetPoints(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var bbox *BoundingBox
	if query.Has("minLat") || query.Has("minLon") || query.Has("maxLat") || query.Has("maxLon") {
		bbox = &BoundingBox{}
		for _, param := range []struct {
			name  string
			value *float64
		}{
			{"minLat", &bbox.MinLat},
			{"minLon", &bbox.MinLon},
			{"maxLat", &bbox.MaxLat},
			{"maxLon", &bbox.MaxLon},
		} {
			v, err := parseFloat64Parameter(query.Get(param.name), true)
			if err != nil {
				c.errorHandler(w, r, err, nil)
				return
			}
			*param.value = v
		}
	}
	result, err := c.service.GetPoints(r.Context(), bbox)
	c.writeResult(w, r, "GET", result, err)
}

// GetNearestPoint - Find the point closest to a location
func (c *DefaultApiController) GetNearestPoint(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	latParam, err := parseFloat64Parameter(query.Get("lat"), true)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	lonParam, err := parseFloat64Parameter(query.Get("lon"), true)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.GetNearestPoint(r.Context(), latParam, lonParam)
	c.writeResult(w, r, "GET", result, err)
}

// GetNeighbors - List the points connected to a point
func (c *DefaultApiController) GetNeighbors(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	idParam, err := parseInt64Parameter(params["id"], true)
	if err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.GetNeighbors(r.Context(), idParam)
	c.writeResult(w, r, "GET", result, err)
}

// GetAirport - Get the departure and arrival points of an airport
func (c *DefaultApiController) GetAirport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)
	result, err := c.service.GetAirport(r.Context(), params["code"])
	c.writeResult(w, r, "GET", result, err)
}

func (c *DefaultApiController) GetSearchSpace(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetSearchSpace(r.Context())
	c.writeResult(w, r, "GET", result, err)
}

func (c *DefaultApiController) SetNavigator(w http.ResponseWriter, r *http.Request) {
	navigatorRequestParam := NavigatorRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&navigatorRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	if err := AssertNavigatorRequestRequired(navigatorRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return
	}
	result, err := c.service.SetNavigator(r.Context(), navigatorRequestParam)
	c.writeResult(w, r, "POST", result, err)
}

func (c *DefaultApiController) GetHealth(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetHealth(r.Context())
	c.writeResult(w, r, "GET", result, err)
}

func (c *DefaultApiController) decodeRouteRequest(w http.ResponseWriter, r *http.Request) (RouteRequest, bool) {
	routeRequestParam := RouteRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&routeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return routeRequestParam, false
	}
	if err := AssertRouteRequestRequired(routeRequestParam); err != nil {
		c.errorHandler(w, r, err, nil)
		return routeRequestParam, false
	}
	return routeRequestParam, true
}

func (c *DefaultApiController) writeResult(w http.ResponseWriter, r *http.Request, method string, result ImplResponse, err error) {
	// If an error occurred, encode the error with the status code
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	// If no error, encode the body and the result code
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", method)
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	EncodeJSONResponse(result.Body, &result.Code, w)
}
