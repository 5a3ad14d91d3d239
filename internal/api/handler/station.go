package handler

import (
	"context"
	"net/http"

	"github.com/multiplanner/multiplanner/internal/api/response"
	"github.com/multiplanner/multiplanner/internal/station"
)

// StationSearcher provides station autocomplete.
type StationSearcher interface {
	Search(ctx context.Context, query string) ([]station.Station, error)
}

// StationHandler handles station directory endpoints.
type StationHandler struct {
	stations StationSearcher
}

// NewStationHandler creates a new StationHandler.
func NewStationHandler(stations StationSearcher) *StationHandler {
	return &StationHandler{stations: stations}
}

// SearchStations handles GET /v1/stations?query= - station autocomplete.
func (h *StationHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	stations, err := h.stations.Search(r.Context(), query)
	if err != nil {
		response.InternalError(w, r, "station search failed")
		return
	}

	response.JSON(w, r, http.StatusOK, map[string]interface{}{
		"stations": stations,
	})
}
