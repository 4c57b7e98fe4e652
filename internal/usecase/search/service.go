// Package search ranks catalog candidates against a free-text query:
// tokenization and lexical expansion, fuzzy token similarity, composite
// scoring with field boosts, and primary/extras partitioning.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
	"github.com/marketfleet/searchd/internal/metrics"
)

// Service runs the search pipeline. Stateless across requests; the only
// shared state is the process-wide read-only lexical tables.
type Service struct {
	repo   Repository
	policy Policy
}

// New creates a search service with the given ranking policy.
func New(repo Repository, policy Policy) *Service {
	return &Service{repo: repo, policy: policy}
}

// Result is one complete search outcome. QueryTokens is the expanded token
// set (stems and synonyms included), sorted; it is what the scorer matched
// against, not the raw tokenization.
type Result struct {
	Query          string
	QueryTokens    []string
	RequestedLimit int
	SecondaryLimit int

	TotalCandidates int
	TotalRanked     int

	Partition Partition
}

// Search fetches candidates, scores them, and partitions the ranked list.
// The candidate fetch is the only I/O; a fetch failure fails the whole call
// with no partial results. Scoring is sequential: the candidate set is
// capped, so parallelizing the loop buys nothing.
func (s *Service) Search(ctx context.Context, q *query.Query) (*Result, error) {
	queryTokens := token.BuildSet(q.Text())

	candidates, err := s.repo.FindCandidates(ctx, q, queryTokens)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	ranked := make([]Scored, 0, len(candidates))
	for i := range candidates {
		scored := scoreProduct(&candidates[i], queryTokens, s.policy)
		if scored.Score >= s.policy.SecondaryFloor {
			ranked = append(ranked, scored)
		}
	}

	// Stable sort: equal scores keep candidate-fetch order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	part := partitionRanked(ranked, q.Limit(), s.policy)

	metrics.SearchesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SearchCandidates.Observe(float64(len(candidates)))
	metrics.SearchRanked.Observe(float64(len(ranked)))

	return &Result{
		Query:           q.Text(),
		QueryTokens:     queryTokens.Values(),
		RequestedLimit:  q.Limit(),
		SecondaryLimit:  s.policy.SecondaryLimit,
		TotalCandidates: len(candidates),
		TotalRanked:     len(ranked),
		Partition:       part,
	}, nil
}
