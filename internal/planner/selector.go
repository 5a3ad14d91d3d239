package planner

// journeyDuration returns the total duration in minutes of a candidate.
func journeyDuration(journey Document) int {
	return journey.Int("duration")
}

// journeyLegs returns the ordered legs of a candidate.
func journeyLegs(journey Document) []Document {
	return journey.Objects("legs")
}

// legMode returns the mode tag of a leg, e.g. "walking" or "tube".
func legMode(leg Document) string {
	return leg.Object("mode").String("id")
}

// interchanges estimates the number of transfers in a journey: a single
// non-walking leg needs no interchange, each additional non-walking leg
// implies one.
func interchanges(journey Document) int {
	count := 0
	for _, leg := range journeyLegs(journey) {
		if legMode(leg) != ModeWalking {
			count++
		}
	}
	if count <= 1 {
		return 0
	}
	return count - 1
}

// containsDisabledMode reports whether any leg uses a mode excluded by the
// filter.
func containsDisabledMode(journey Document, modes ModeFilter) bool {
	for _, leg := range journeyLegs(journey) {
		if !modes.Allows(legMode(leg)) {
			return true
		}
	}
	return false
}

// pickJourney deterministically selects the best candidate. Journeys with a
// disabled-mode leg are discarded first; the remainder is reduced under the
// sort preference with the other criterion as tie-break. Ties beyond both
// criteria keep the first-seen candidate. Returns ErrNoJourneysMatchFilter
// if nothing survives filtering.
func pickJourney(journeys []Document, sort SortPreference, modes ModeFilter) (Document, error) {
	var best Document
	var bestDuration, bestChanges int

	for _, journey := range journeys {
		if containsDisabledMode(journey, modes) {
			continue
		}

		duration := journeyDuration(journey)
		changes := interchanges(journey)

		if best == nil || replaces(sort, duration, changes, bestDuration, bestChanges) {
			best = journey
			bestDuration = duration
			bestChanges = changes
		}
	}

	if best == nil {
		return nil, ErrNoJourneysMatchFilter
	}
	return best, nil
}

// replaces reports whether a candidate beats the current best under the
// given preference.
func replaces(sort SortPreference, duration, changes, bestDuration, bestChanges int) bool {
	if sort == SortFewestTransfers {
		if changes != bestChanges {
			return changes < bestChanges
		}
		return duration < bestDuration
	}

	if duration != bestDuration {
		return duration < bestDuration
	}
	return changes < bestChanges
}
