package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/multiplanner/multiplanner/internal/api/models"
	"github.com/multiplanner/multiplanner/internal/api/response"
	"github.com/multiplanner/multiplanner/internal/planner"
)

// RoutePlanner plans journeys between resolved stations.
type RoutePlanner interface {
	RouteStationToStation(ctx context.Context, from, to *planner.Station, opts planner.Options) (*planner.LegSummary, error)
	RouteMulti(ctx context.Context, stops []*planner.Station, opts planner.Options) (*planner.RouteResult, error)
}

// RouteHandler handles journey planning endpoints.
type RouteHandler struct {
	planner RoutePlanner
	logger  zerolog.Logger
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(p RoutePlanner, logger zerolog.Logger) *RouteHandler {
	return &RouteHandler{planner: p, logger: logger}
}

// ComputeRoute handles POST /v1/routes - plan a single station-to-station journey.
func (h *RouteHandler) ComputeRoute(w http.ResponseWriter, r *http.Request) {
	var input models.RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if input.From == nil || input.To == nil {
		response.BadRequest(w, r, "from and to are required", []models.FieldError{
			{Field: "from", Message: "required"},
			{Field: "to", Message: "required"},
		})
		return
	}

	summary, err := h.planner.RouteStationToStation(r.Context(),
		input.From.Station(), input.To.Station(), input.Options.PlannerOptions())
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, summary)
}

// ComputeMultiRoute handles POST /v1/routes/multi - plan a journey through
// an ordered list of stops.
func (h *RouteHandler) ComputeMultiRoute(w http.ResponseWriter, r *http.Request) {
	var input models.RouteMultiRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if len(input.Stops) < 2 {
		response.BadRequest(w, r, "stops must contain at least 2 entries", []models.FieldError{
			{Field: "stops", Message: "at least 2 stops are required"},
		})
		return
	}

	stops := make([]*planner.Station, len(input.Stops))
	for i, s := range input.Stops {
		stops[i] = s.Station()
	}

	result, err := h.planner.RouteMulti(r.Context(), stops, input.Options.PlannerOptions())
	if err != nil {
		h.writeRouteError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, result)
}

// writeRouteError maps planner errors to problem responses. Client faults
// carry the underlying detail; upstream faults return a generic message
// with the cause logged.
func (h *RouteHandler) writeRouteError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, planner.ErrInvalidInput):
		response.BadRequest(w, r, err.Error(), nil)
	case errors.Is(err, planner.ErrNoMatch):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, planner.ErrNoJourneys):
		response.NotFound(w, r, err.Error())
	case errors.Is(err, planner.ErrNoJourneysMatchFilter):
		response.UnprocessableEntity(w, r, "No journeys match the selected modes. Try enabling bus or tram.")
	default:
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("route planning failed")
		response.BadGateway(w, r, "Journey planning is temporarily unavailable. Please try again.")
	}
}
