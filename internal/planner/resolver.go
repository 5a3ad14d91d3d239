package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// StopResolver maps a station reference to an upstream stop identifier.
type StopResolver struct {
	cache  *Cache
	logger zerolog.Logger
}

// NewStopResolver creates a resolver backed by the given cache.
func NewStopResolver(cache *Cache, logger zerolog.Logger) *StopResolver {
	return &StopResolver{cache: cache, logger: logger}
}

// Resolve returns the stop identifier for station. A station carrying a
// non-blank identifier is returned unchanged without any lookup; otherwise
// the name is resolved via cached stop-point search, taking the first
// candidate.
func (r *StopResolver) Resolve(ctx context.Context, station *Station) (string, error) {
	if station == nil {
		return "", fmt.Errorf("%w: station is required", ErrInvalidInput)
	}

	if id := strings.TrimSpace(station.ID); id != "" {
		return id, nil
	}

	name := strings.TrimSpace(station.Name)
	if name == "" {
		return "", fmt.Errorf("%w: station needs a stop id or a name", ErrInvalidInput)
	}

	doc, err := r.cache.StopSearch(ctx, name)
	if err != nil {
		return "", &ResolutionError{Name: name, Err: err}
	}

	matches := doc.Objects("matches")
	if len(matches) == 0 {
		return "", fmt.Errorf("%w for %q", ErrNoMatch, name)
	}

	id := matches[0].String("id")
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: first candidate for %q has no id", ErrNoMatch, name)
	}

	r.logger.Debug().Str("name", name).Str("stop_id", id).Msg("resolved stop point")

	return id, nil
}
