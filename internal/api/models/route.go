package models

import (
	"strings"

	"github.com/multiplanner/multiplanner/internal/planner"
)

// StationInput identifies a stop by stable ID or by display name.
type StationInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// RouteOptions carries the journey preferences shared by both route endpoints.
type RouteOptions struct {
	// SortBy is "fastest" or "fewest-transfers". Defaults to fastest.
	SortBy string `json:"sortBy,omitempty"`

	// IncludeBus and IncludeTram toggle the optional surface modes.
	// Omitted values default to true.
	IncludeBus  *bool `json:"includeBus,omitempty"`
	IncludeTram *bool `json:"includeTram,omitempty"`
}

// RouteRequest is the request body for a single station-to-station route.
type RouteRequest struct {
	From    *StationInput `json:"from"`
	To      *StationInput `json:"to"`
	Options *RouteOptions `json:"options,omitempty"`
}

// RouteMultiRequest is the request body for a multi-stop route.
type RouteMultiRequest struct {
	Stops   []*StationInput `json:"stops"`
	Options *RouteOptions   `json:"options,omitempty"`
}

// Station converts a StationInput to a planner station. Nil stays nil so
// the planner can report the missing stop.
func (s *StationInput) Station() *planner.Station {
	if s == nil {
		return nil
	}
	return &planner.Station{ID: s.ID, Name: s.Name}
}

// PlannerOptions converts RouteOptions to planner options. A nil receiver
// yields the defaults: fastest, all modes enabled.
func (o *RouteOptions) PlannerOptions() planner.Options {
	opts := planner.Options{
		Sort:  planner.SortFastest,
		Modes: planner.ModeFilter{IncludeBus: true, IncludeTram: true},
	}
	if o == nil {
		return opts
	}

	sortBy := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(o.SortBy), "_", "-"))
	if sortBy == string(planner.SortFewestTransfers) {
		opts.Sort = planner.SortFewestTransfers
	}

	if o.IncludeBus != nil {
		opts.Modes.IncludeBus = *o.IncludeBus
	}
	if o.IncludeTram != nil {
		opts.Modes.IncludeTram = *o.IncludeTram
	}
	return opts
}
