package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds configuration for the Planner.
type Config struct {
	// Gateway is the upstream transit API client (required).
	Gateway Gateway

	// Logger for planner operations.
	Logger zerolog.Logger

	// JourneyTTL and StopSearchTTL tune the gateway cache; zero values use
	// the cache defaults.
	JourneyTTL    time.Duration
	StopSearchTTL time.Duration

	// Provider names the upstream for metrics attribution.
	Provider string

	// Metrics records cache hits and misses (optional).
	Metrics CacheMetrics

	// Now overrides the clock used for time buckets (tests only).
	Now func() time.Time
}

// Planner orchestrates route requests: it resolves every station once,
// derives a single time bucket for the request, fetches journey options per
// adjacent pair through the cache, selects the best candidate, and folds
// per-leg summaries into the final result.
type Planner struct {
	cache    *Cache
	resolver *StopResolver
	logger   zerolog.Logger
	now      func() time.Time
}

// New creates a Planner with its cache and resolver.
func New(cfg Config) *Planner {
	cache := NewCache(CacheConfig{
		Gateway:       cfg.Gateway,
		Logger:        cfg.Logger,
		JourneyTTL:    cfg.JourneyTTL,
		StopSearchTTL: cfg.StopSearchTTL,
		Provider:      cfg.Provider,
		Metrics:       cfg.Metrics,
	})

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Planner{
		cache:    cache,
		resolver: NewStopResolver(cache, cfg.Logger),
		logger:   cfg.Logger,
		now:      now,
	}
}

// RouteStationToStation plans a single leg between two stations.
func (p *Planner) RouteStationToStation(ctx context.Context, from, to *Station, opts Options) (*LegSummary, error) {
	if from == nil || to == nil {
		return nil, fmt.Errorf("%w: both from and to stations are required", ErrInvalidInput)
	}

	summaries, err := p.routeLegs(ctx, []*Station{from, to}, opts)
	if err != nil {
		return nil, err
	}
	return &summaries[0], nil
}

// RouteMulti plans every adjacent pair of the given stops, in order, and
// aggregates totals. Stops [A, B, C] produce legs A→B then B→C.
func (p *Planner) RouteMulti(ctx context.Context, stops []*Station, opts Options) (*RouteResult, error) {
	if len(stops) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 stops", ErrInvalidInput)
	}
	for i, stop := range stops {
		if stop == nil {
			return nil, fmt.Errorf("%w: stop at index %d is missing", ErrInvalidInput, i)
		}
	}

	summaries, err := p.routeLegs(ctx, stops, opts)
	if err != nil {
		return nil, err
	}

	result := &RouteResult{
		Legs:    len(summaries),
		Results: summaries,
	}
	for _, summary := range summaries {
		result.TotalDurationMinutes += summary.DurationMinutes
		result.TotalInterchanges += summary.Interchanges
	}

	return result, nil
}

// routeLegs runs the shared pipeline: resolve all stations, compute one
// bucket, then plan each adjacent pair in caller order. Any failure aborts
// the whole request.
func (p *Planner) routeLegs(ctx context.Context, stops []*Station, opts Options) ([]LegSummary, error) {
	opts = opts.normalized()

	// Resolve all ids up front; repeated stations hit the stop-search cache.
	ids := make([]string, len(stops))
	for i, stop := range stops {
		id, err := p.resolver.Resolve(ctx, stop)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	// One bucket for the whole request keeps cache keys consistent across
	// legs, even if wall-clock time crosses a boundary mid-computation.
	bucket := timeBucket(p.now())
	signature := opts.Modes.Signature()

	summaries := make([]LegSummary, 0, len(stops)-1)
	for i := 0; i < len(stops)-1; i++ {
		summary, err := p.planLeg(ctx, stops[i], stops[i+1], ids[i], ids[i+1], bucket, opts)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *summary)
	}

	p.logger.Debug().
		Int("legs", len(summaries)).
		Str("bucket", bucket).
		Str("modes", signature).
		Str("sort", string(opts.Sort)).
		Msg("route planned")

	return summaries, nil
}

// planLeg plans a single adjacent pair: cached journey fetch, selection,
// summary.
func (p *Planner) planLeg(ctx context.Context, from, to *Station, fromID, toID, bucket string, opts Options) (*LegSummary, error) {
	doc, err := p.cache.Journey(ctx, fromID, toID, bucket, opts.Modes.Signature())
	if err != nil {
		return nil, &UpstreamError{Op: "journey results", Err: err}
	}

	journeys := doc.Objects("journeys")
	if len(journeys) == 0 {
		return nil, fmt.Errorf("%w between %s and %s", ErrNoJourneys, from.DisplayName(), to.DisplayName())
	}

	best, err := pickJourney(journeys, opts.Sort, opts.Modes)
	if err != nil {
		return nil, err
	}

	summary := summarizeLeg(from.DisplayName(), to.DisplayName(), fromID, toID, best)
	return &summary, nil
}
