// Package planner implements the journey-planning core: resolving station
// references to stop identifiers, fetching journey options per leg through a
// time-bucketed cache, selecting the best candidate journey, and reducing it
// to a compact summary.
package planner

import "strings"

// Station is a caller-supplied reference to a place to travel from or to.
// ID is the upstream stop identifier and is authoritative when present;
// otherwise Name is required and resolved via stop-point search.
type Station struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Locality string `json:"locality,omitempty"`
}

// DisplayName returns the best human-readable label for the station.
func (s *Station) DisplayName() string {
	if s == nil {
		return ""
	}
	if strings.TrimSpace(s.Name) != "" {
		return s.Name
	}
	return s.ID
}

// SortPreference selects the ordering used when picking the best journey.
type SortPreference string

const (
	SortFastest         SortPreference = "fastest"
	SortFewestTransfers SortPreference = "fewest-transfers"
)

// coreModes are always eligible for journey planning, in the order they are
// sent upstream. Bus and tram are the only toggleable modes.
var coreModes = []string{
	ModeWalking,
	"tube",
	"dlr",
	"overground",
	"elizabeth-line",
}

// Mode tags matched exactly against upstream leg mode identifiers.
const (
	ModeWalking = "walking"
	ModeBus     = "bus"
	ModeTram    = "tram"
)

// ModeFilter is the set of transport modes eligible for a request.
type ModeFilter struct {
	IncludeBus  bool
	IncludeTram bool
}

// Modes returns the allowed mode tags in the fixed upstream order.
func (f ModeFilter) Modes() []string {
	modes := make([]string, len(coreModes), len(coreModes)+2)
	copy(modes, coreModes)
	if f.IncludeBus {
		modes = append(modes, ModeBus)
	}
	if f.IncludeTram {
		modes = append(modes, ModeTram)
	}
	return modes
}

// Signature returns the deterministic CSV form of the filter, used both as
// the upstream query parameter and as part of the journey cache key.
func (f ModeFilter) Signature() string {
	return strings.Join(f.Modes(), ",")
}

// Allows reports whether journeys containing a leg of the given mode are
// eligible under this filter.
func (f ModeFilter) Allows(mode string) bool {
	switch mode {
	case ModeBus:
		return f.IncludeBus
	case ModeTram:
		return f.IncludeTram
	default:
		return true
	}
}

// Options carries the per-request planning preferences.
type Options struct {
	Sort  SortPreference
	Modes ModeFilter
}

// normalized applies defaults: sort preference falls back to fastest.
func (o Options) normalized() Options {
	if o.Sort != SortFewestTransfers {
		o.Sort = SortFastest
	}
	return o
}

// Segment describes one leg of a chosen journey. Optional fields are
// omitted when the upstream leg did not carry them.
type Segment struct {
	Mode            string `json:"mode"`
	Line            string `json:"line,omitempty"`
	Instruction     string `json:"instruction,omitempty"`
	From            string `json:"from,omitempty"`
	To              string `json:"to,omitempty"`
	DurationMinutes int    `json:"durationMinutes"`
}

// LegSummary is the planning result for one adjacent station pair.
type LegSummary struct {
	FromName        string    `json:"fromName"`
	ToName          string    `json:"toName"`
	FromStopID      string    `json:"fromStopId"`
	ToStopID        string    `json:"toStopId"`
	DurationMinutes int       `json:"durationMinutes"`
	StartDateTime   string    `json:"startDateTime,omitempty"`
	ArrivalDateTime string    `json:"arrivalDateTime,omitempty"`
	Interchanges    int       `json:"interchanges"`
	Label           string    `json:"label"`
	Segments        []Segment `json:"segments"`
}

// RouteResult aggregates the legs of a multi-stop request in caller order.
type RouteResult struct {
	Legs                 int          `json:"legs"`
	Results              []LegSummary `json:"results"`
	TotalDurationMinutes int          `json:"totalDurationMinutes"`
	TotalInterchanges    int          `json:"totalInterchanges"`
}
