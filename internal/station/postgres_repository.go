package station

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Search relies on the pg_trgm extension for similarity ranking.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL station repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Search returns stations matching the query by trigram similarity,
// falling back to substring matching for short queries that fall under
// the similarity threshold.
func (r *PostgresRepository) Search(ctx context.Context, query string, limit int) ([]Station, error) {
	sql := `
		SELECT code, name, locality
		FROM stations
		WHERE lower(name) % $1
		   OR lower(name) LIKE '%' || $1 || '%'
		ORDER BY similarity(lower(name), $1) DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, sql, strings.ToLower(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []Station
	for rows.Next() {
		var s Station
		var locality *string
		if err := rows.Scan(&s.Code, &s.Name, &locality); err != nil {
			return nil, err
		}
		if locality != nil {
			s.Locality = *locality
		}
		stations = append(stations, s)
	}

	return stations, rows.Err()
}

// Upsert inserts or updates a station by its code.
func (r *PostgresRepository) Upsert(ctx context.Context, s Station) error {
	sql := `
		INSERT INTO stations (code, name, locality)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			locality = EXCLUDED.locality
	`

	_, err := r.pool.Exec(ctx, sql, s.Code, s.Name, s.Locality)
	return err
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
