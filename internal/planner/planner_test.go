package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func fixedNow() time.Time {
	return time.Date(2026, 2, 1, 8, 27, 0, 0, time.UTC)
}

func newPlanner(gateway Gateway) *Planner {
	return New(Config{
		Gateway: gateway,
		Logger:  testLogger(),
		Now:     fixedNow,
	})
}

func TestRouteStationToStation(t *testing.T) {
	gateway := &mockGateway{
		searchDoc:  matchesDoc("stop-1"),
		journeyDoc: journeysDoc(journey(25, leg("walking"), namedLeg("tube", "Victoria"))),
	}
	planner := newPlanner(gateway)

	summary, err := planner.RouteStationToStation(context.Background(),
		&Station{Name: "Euston"}, &Station{Name: "Victoria"}, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.DurationMinutes != 25 {
		t.Errorf("expected 25 minutes, got %d", summary.DurationMinutes)
	}
	if summary.Label != "Victoria" {
		t.Errorf("expected label Victoria, got %q", summary.Label)
	}
	if summary.FromName != "Euston" || summary.ToName != "Victoria" {
		t.Errorf("endpoint names missing: %+v", summary)
	}
}

func TestRouteStationToStation_NilStation(t *testing.T) {
	gateway := &mockGateway{}
	planner := newPlanner(gateway)

	_, err := planner.RouteStationToStation(context.Background(), &Station{Name: "Euston"}, nil, Options{})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if gateway.searchCalls.Load() != 0 || gateway.journeyCalls.Load() != 0 {
		t.Error("validation must happen before any upstream call")
	}
}

func TestRouteMulti_ThreeStopsProduceTwoOrderedLegs(t *testing.T) {
	gateway := &mockGateway{
		searchDoc:  matchesDoc("stop-1"),
		journeyDoc: journeysDoc(journey(20, namedLeg("tube", ""))),
	}
	planner := newPlanner(gateway)

	stops := []*Station{
		{ID: "id-a", Name: "A"},
		{ID: "id-b", Name: "B"},
		{ID: "id-c", Name: "C"},
	}

	result, err := planner.RouteMulti(context.Background(), stops, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Legs != 2 || len(result.Results) != 2 {
		t.Fatalf("expected exactly 2 legs, got %d", result.Legs)
	}
	if result.Results[0].FromStopID != "id-a" || result.Results[0].ToStopID != "id-b" {
		t.Errorf("first leg out of order: %+v", result.Results[0])
	}
	if result.Results[1].FromStopID != "id-b" || result.Results[1].ToStopID != "id-c" {
		t.Errorf("second leg out of order: %+v", result.Results[1])
	}
	if result.TotalDurationMinutes != 40 {
		t.Errorf("expected total 40 minutes, got %d", result.TotalDurationMinutes)
	}
	if result.TotalInterchanges != 0 {
		t.Errorf("expected 0 total interchanges, got %d", result.TotalInterchanges)
	}
}

func TestRouteMulti_ValidatesBeforeUpstream(t *testing.T) {
	gateway := &mockGateway{}
	planner := newPlanner(gateway)

	ctx := context.Background()

	if _, err := planner.RouteMulti(ctx, []*Station{{Name: "A"}}, Options{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("one stop: expected ErrInvalidInput, got %v", err)
	}
	if _, err := planner.RouteMulti(ctx, nil, Options{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no stops: expected ErrInvalidInput, got %v", err)
	}
	if _, err := planner.RouteMulti(ctx, []*Station{{Name: "A"}, nil, {Name: "C"}}, Options{}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil stop: expected ErrInvalidInput, got %v", err)
	}

	if gateway.searchCalls.Load() != 0 || gateway.journeyCalls.Load() != 0 {
		t.Error("validation must happen before any upstream call")
	}
}

func TestRouteMulti_SharedBucketAndCache(t *testing.T) {
	gateway := &mockGateway{
		journeyDoc: journeysDoc(journey(15, namedLeg("tube", ""))),
	}
	planner := newPlanner(gateway)

	// A → B → A reuses the A→B result only if the pair matches exactly;
	// here the two legs are distinct pairs so both hit the gateway, but a
	// repeated request within the same bucket is served from cache.
	stops := []*Station{{ID: "id-a"}, {ID: "id-b"}, {ID: "id-a"}}

	if _, err := planner.RouteMulti(context.Background(), stops, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway.journeyCalls.Load() != 2 {
		t.Fatalf("expected 2 gateway calls for 2 distinct pairs, got %d", gateway.journeyCalls.Load())
	}

	if _, err := planner.RouteMulti(context.Background(), stops, Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gateway.journeyCalls.Load() != 2 {
		t.Errorf("expected the repeat request to be fully cached, got %d calls", gateway.journeyCalls.Load())
	}
}

func TestRouteMulti_UpstreamEmptyIsDistinctFromFilteredOut(t *testing.T) {
	gateway := &mockGateway{journeyDoc: Document{"journeys": []any{}}}
	planner := newPlanner(gateway)

	stops := []*Station{{ID: "id-a", Name: "A"}, {ID: "id-b", Name: "B"}}

	_, err := planner.RouteMulti(context.Background(), stops, Options{})
	if !errors.Is(err, ErrNoJourneys) {
		t.Fatalf("expected ErrNoJourneys, got %v", err)
	}
	if errors.Is(err, ErrNoJourneysMatchFilter) {
		t.Error("upstream-empty must not be reported as filtered-out")
	}
}

func TestRouteMulti_AllJourneysFilteredOut(t *testing.T) {
	gateway := &mockGateway{journeyDoc: journeysDoc(journey(10, leg("bus")))}
	planner := newPlanner(gateway)

	stops := []*Station{{ID: "id-a"}, {ID: "id-b"}}

	_, err := planner.RouteMulti(context.Background(), stops, Options{Modes: ModeFilter{IncludeBus: false}})
	if !errors.Is(err, ErrNoJourneysMatchFilter) {
		t.Fatalf("expected ErrNoJourneysMatchFilter, got %v", err)
	}
}

func TestRouteMulti_GatewayFaultIsUpstreamError(t *testing.T) {
	gateway := &mockGateway{journeyErr: errors.New("gateway timeout")}
	planner := newPlanner(gateway)

	stops := []*Station{{ID: "id-a"}, {ID: "id-b"}}

	_, err := planner.RouteMulti(context.Background(), stops, Options{})

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if IsClientFault(err) {
		t.Error("gateway faults are server faults")
	}
}

func TestRouteMulti_SortPreferenceDefaultsToFastest(t *testing.T) {
	slowDirect := journey(50, namedLeg("overground", ""))
	fastChanges := journey(25, namedLeg("tube", ""), namedLeg("dlr", ""))
	gateway := &mockGateway{journeyDoc: journeysDoc(slowDirect, fastChanges)}
	planner := newPlanner(gateway)

	stops := []*Station{{ID: "id-a"}, {ID: "id-b"}}

	result, err := planner.RouteMulti(context.Background(), stops, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Results[0].DurationMinutes != 25 {
		t.Errorf("default sort should pick the fastest journey, got %d minutes", result.Results[0].DurationMinutes)
	}
}
