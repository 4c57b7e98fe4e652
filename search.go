package searchd

import (
	"context"
	"fmt"

	"github.com/marketfleet/searchd/internal/domain/search/query"
)

// SearchOptions configures a search query. The zero value means no filters
// and the default limit.
type SearchOptions struct {
	Limit      int
	Categories []string
	Brands     []string
	MinPrice   *float64
	MaxPrice   *float64
}

// Search ranks catalog products against a free-text query and returns the
// primary and extras tiers.
func (c *Client) Search(ctx context.Context, text string, opts *SearchOptions) (*SearchResult, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}

	var price *query.PriceRange
	if opts.MinPrice != nil || opts.MaxPrice != nil {
		price = &query.PriceRange{Min: opts.MinPrice, Max: opts.MaxPrice}
	}

	q, err := query.New(text, opts.Limit, opts.Categories, opts.Brands, price)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	res, err := c.searchSvc.Search(ctx, &q)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return &SearchResult{
		Primary:         fromScored(res.Partition.Primary),
		Extras:          fromScored(res.Partition.Extras),
		QueryTokens:     res.QueryTokens,
		TotalCandidates: res.TotalCandidates,
		TotalRanked:     res.TotalRanked,
		TotalPrimary:    res.Partition.TotalPrimary,
		TotalExtras:     res.Partition.TotalExtras,
	}, nil
}
