package station

import "context"

// Repository defines the interface for station directory persistence.
type Repository interface {
	// Search returns stations whose name is similar to the query,
	// best match first, at most limit rows.
	Search(ctx context.Context, query string, limit int) ([]Station, error)

	// Upsert inserts or updates a station by its code.
	Upsert(ctx context.Context, s Station) error
}
