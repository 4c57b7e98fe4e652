package search

import (
	"context"

	"github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

// Repository fetches the bounded candidate set for ranking: active,
// non-deleted products passing the query's structured filters and the loose
// token-regex pass. The expanded query tokens drive the regex.
type Repository interface {
	FindCandidates(ctx context.Context, q *query.Query, tokens token.Set) ([]catalog.Product, error)
}
