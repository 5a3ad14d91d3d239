package planner

import (
	"errors"
	"fmt"
)

// Client-fault errors. These indicate a problem with the request itself and
// abort the pipeline immediately; no partial results are returned.
var (
	// ErrInvalidInput indicates malformed or missing request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoMatch indicates stop-point search found nothing for a name.
	ErrNoMatch = errors.New("no stop point match")

	// ErrNoJourneys indicates the upstream API returned zero journeys.
	ErrNoJourneys = errors.New("no journeys returned")

	// ErrNoJourneysMatchFilter indicates journeys were returned but none
	// survive the mode filter. Distinct from ErrNoJourneys so callers can
	// suggest enabling bus or tram.
	ErrNoJourneysMatchFilter = errors.New("no journeys match the mode filter")
)

// ResolutionError reports a collaborator fault while resolving a station
// name. This is a server fault, distinct from ErrNoMatch which is a
// legitimate empty result.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving stop point for %q: %v", e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// UpstreamError reports a transport or parse fault talking to the journey
// API. The cause is retained for diagnostics but not echoed to callers.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsClientFault reports whether err should be surfaced to the caller as a
// request problem rather than a server-side failure.
func IsClientFault(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNoMatch) ||
		errors.Is(err, ErrNoJourneys) ||
		errors.Is(err, ErrNoJourneysMatchFilter)
}
