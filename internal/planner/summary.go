package planner

import "strings"

// summarizeLeg reduces one chosen journey into a LegSummary. Duration and
// timestamps are taken verbatim; the interchange count is recomputed from
// the legs so the builder stands alone.
func summarizeLeg(fromName, toName, fromID, toID string, journey Document) LegSummary {
	legs := journeyLegs(journey)

	summary := LegSummary{
		FromName:        fromName,
		ToName:          toName,
		FromStopID:      fromID,
		ToStopID:        toID,
		DurationMinutes: journeyDuration(journey),
		StartDateTime:   journey.String("startDateTime"),
		ArrivalDateTime: journey.String("arrivalDateTime"),
		Interchanges:    interchanges(journey),
		Label:           journeyLabel(legs),
		Segments:        make([]Segment, 0, len(legs)),
	}

	for _, leg := range legs {
		summary.Segments = append(summary.Segments, Segment{
			Mode:            legMode(leg),
			Line:            legLine(leg),
			Instruction:     leg.Object("instruction").String("detailed"),
			From:            leg.Object("departurePoint").String("commonName"),
			To:              leg.Object("arrivalPoint").String("commonName"),
			DurationMinutes: leg.Int("duration"),
		})
	}

	return summary
}

// legLine returns the route/line name of a leg, if any.
func legLine(leg Document) string {
	routeOptions := leg.Objects("routeOptions")
	if len(routeOptions) == 0 {
		return ""
	}
	return routeOptions[0].String("name")
}

// journeyLabel builds the short human label for a journey: the route name
// of the first named non-walking leg, falling back to the de-duplicated
// ordered list of leg modes, falling back to "Journey".
func journeyLabel(legs []Document) string {
	for _, leg := range legs {
		if legMode(leg) == ModeWalking {
			continue
		}
		if name := strings.TrimSpace(legLine(leg)); name != "" {
			return name
		}
	}

	seen := make(map[string]bool)
	var modes []string
	for _, leg := range legs {
		mode := legMode(leg)
		if mode == "" || mode == ModeWalking || seen[mode] {
			continue
		}
		seen[mode] = true
		modes = append(modes, mode)
	}
	if len(modes) > 0 {
		return strings.Join(modes, " + ")
	}

	return "Journey"
}
