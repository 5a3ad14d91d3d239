package station

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultSearchLimit caps autocomplete results per query.
const DefaultSearchLimit = 5

// Service provides station autocomplete on top of a Repository.
type Service struct {
	repo   Repository
	logger zerolog.Logger
}

// NewService creates a new station service.
func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Search returns up to DefaultSearchLimit stations matching the query.
// A blank query returns an empty result rather than an error.
func (s *Service) Search(ctx context.Context, query string) ([]Station, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Station{}, nil
	}

	stations, err := s.repo.Search(ctx, query, DefaultSearchLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("station search failed")
		return nil, fmt.Errorf("searching stations: %w", err)
	}

	if stations == nil {
		stations = []Station{}
	}
	return stations, nil
}
