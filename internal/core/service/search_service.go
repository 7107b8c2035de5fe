package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/projecthub/portal-api/internal/api/metrics"
	"github.com/projecthub/portal-api/internal/core/domain"
	"github.com/projecthub/portal-api/internal/core/ports"
)

// SearchService fans a single query out across all registered resource
// adapters concurrently and concatenates their hits in registration order.
// There is no cross-adapter relevance ranking.
type SearchService struct {
	adapters []ports.SearchAdapter
	logger   zerolog.Logger
}

// NewSearchService registers adapters in the order their hits should appear
// in merged results (client, then customer, then project in the default
// wiring).
func NewSearchService(logger zerolog.Logger, adapters ...ports.SearchAdapter) *SearchService {
	return &SearchService{adapters: adapters, logger: logger}
}

// Search resolves queries shorter than domain.MinQueryLength to an empty
// result set without invoking any adapter. Otherwise all adapters run
// concurrently; a single adapter failing fails the whole aggregate and
// partial results are discarded rather than shown.
func (s *SearchService) Search(ctx context.Context, query string) ([]domain.SearchHit, error) {
	q := strings.TrimSpace(query)
	if len([]rune(q)) < domain.MinQueryLength {
		metrics.SearchesTotal.WithLabelValues("short_circuit").Inc()
		return []domain.SearchHit{}, nil
	}

	start := time.Now()
	perAdapter := make([][]domain.SearchHit, len(s.adapters))
	g, gctx := errgroup.WithContext(ctx)
	for i, adapter := range s.adapters {
		i, adapter := i, adapter
		g.Go(func() error {
			hits, err := adapter.Search(gctx, q)
			if err != nil {
				return fmt.Errorf("adapter %s: %w", adapter.Type(), err)
			}
			perAdapter[i] = hits
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.SearchesTotal.WithLabelValues("failed").Inc()
		s.logger.Error().Err(err).Str("query", q).Msg("search failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, err)
	}

	merged := []domain.SearchHit{}
	for _, hits := range perAdapter {
		merged = append(merged, hits...)
	}

	metrics.SearchesTotal.WithLabelValues("settled").Inc()
	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	return merged, nil
}
