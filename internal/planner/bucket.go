package planner

import "time"

// bucketWidth is the cache freshness window for journey results. All legs
// of one request share the bucket computed when the request started.
const bucketWidth = 5 * time.Minute

// timeBucket rounds now down to the bucket width in UTC and formats it as a
// stable cache-key component, e.g. "2026-02-01T08:25Z".
func timeBucket(now time.Time) string {
	return now.UTC().Truncate(bucketWidth).Format("2006-01-02T15:04Z")
}
