// Package search fans a query out across the five console collections
// and groups the hits by category in a fixed order. Debouncer wraps the
// aggregator for interactive callers so only the final keystroke of a
// burst reaches the store.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/infom4th/club-console/internal/models"
)

// minQueryLength is the shortest query that reaches the store. Shorter
// input short-circuits to an empty result.
const minQueryLength = 2

// Repository defines the per-collection search methods. Each returns
// at most five hits.
type Repository interface {
	SearchProfiles(ctx context.Context, query string) ([]models.SearchHit, error)
	SearchJoinRequests(ctx context.Context, query string) ([]models.SearchHit, error)
	SearchEvents(ctx context.Context, query string) ([]models.SearchHit, error)
	SearchNews(ctx context.Context, query string) ([]models.SearchHit, error)
	SearchLibrary(ctx context.Context, query string) ([]models.SearchHit, error)
}

// Service runs console-wide searches.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New creates a search Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Search queries all five collections concurrently and returns the
// hits concatenated in the fixed category order: profiles, join
// requests, events, news, library. There is no cross-category ranking.
func (s *Service) Search(ctx context.Context, query string) ([]models.SearchHit, error) {
	const op = "services.search.Search"

	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []models.SearchHit{}, nil
	}

	results := make([][]models.SearchHit, 5)
	searches := []func(context.Context, string) ([]models.SearchHit, error){
		s.repo.SearchProfiles,
		s.repo.SearchJoinRequests,
		s.repo.SearchEvents,
		s.repo.SearchNews,
		s.repo.SearchLibrary,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i, search := range searches {
		group.Go(func() error {
			hits, err := search(groupCtx, query)
			if err != nil {
				return err
			}
			results[i] = hits
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	merged := []models.SearchHit{}
	for _, hits := range results {
		merged = append(merged, hits...)
	}

	return merged, nil
}
