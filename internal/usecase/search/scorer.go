package search

import (
	"strings"

	"github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

// Scored is one ranked candidate: the composite score plus the evidence the
// partitioner and the caller need to interpret it.
type Scored struct {
	Product      *catalog.Product
	Similarity   float64
	Boost        float64
	Score        float64
	MatchSummary []string
}

// scoreProduct computes the composite score for one candidate: semantic
// similarity between the query and the union of all field tokens, plus the
// additive field boosts.
func scoreProduct(p *catalog.Product, queryTokens token.Set, pol Policy) Scored {
	ft := tokenizeProduct(p)

	similarity := semanticSimilarity(queryTokens, ft.combined())
	boost := relevanceBoost(queryTokens, p, ft, pol)

	return Scored{
		Product:      p,
		Similarity:   similarity,
		Boost:        boost,
		Score:        similarity + boost,
		MatchSummary: matchSummary(queryTokens, ft, pol),
	}
}

// semanticSimilarity averages, over all query tokens, each token's best
// pairwise similarity against any document token. Empty sets score 0.
func semanticSimilarity(queryTokens, docTokens token.Set) float64 {
	if queryTokens.Len() == 0 || docTokens.Len() == 0 {
		return 0
	}
	total := 0.0
	for qt := range queryTokens {
		best := 0.0
		for dt := range docTokens {
			if s := token.Similarity(qt, dt); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(queryTokens.Len())
}

// hasOverlap reports whether any query/document token pair reaches the
// overlap threshold.
func hasOverlap(queryTokens, docTokens token.Set, threshold float64) bool {
	for qt := range queryTokens {
		for dt := range docTokens {
			if token.Similarity(qt, dt) >= threshold {
				return true
			}
		}
	}
	return false
}

// countPairMatches counts every query/document token combination at or above
// the threshold. Pairs are counted per combination, not deduplicated per
// query token.
func countPairMatches(queryTokens, docTokens token.Set, threshold float64) int {
	matches := 0
	for qt := range queryTokens {
		for dt := range docTokens {
			if token.Similarity(qt, dt) >= threshold {
				matches++
			}
		}
	}
	return matches
}

// relevanceBoost sums the field boosts. All may apply to one candidate.
func relevanceBoost(queryTokens token.Set, p *catalog.Product, ft fieldTokens, pol Policy) float64 {
	boost := 0.0

	if tags, ok := ft[fieldTags]; ok && hasOverlap(queryTokens, tags, pol.OverlapSimilarity) {
		boost += pol.TagBoost
	}
	if category, ok := ft[fieldCategory]; ok && hasOverlap(queryTokens, category, pol.OverlapSimilarity) {
		boost += pol.CategoryBoost
	}
	if brand, ok := ft[fieldBrand]; ok && hasOverlap(queryTokens, brand, pol.OverlapSimilarity) {
		boost += pol.BrandBoost
	}

	if variants, ok := ft[fieldVariants]; ok {
		if matches := countPairMatches(queryTokens, variants, pol.VariantMatchSimilarity); matches > 0 {
			variantBoost := float64(matches) * pol.VariantBoostStep
			if variantBoost > pol.VariantBoostCap {
				variantBoost = pol.VariantBoostCap
			}
			boost += variantBoost
		}
	}

	if len(p.Tags) > 0 && includesExactTag(queryTokens, p.Tags) {
		boost += pol.ExactTagBoost
	}

	return boost
}

// includesExactTag reports whether any query token exactly equals one of the
// product's declared tags, case-insensitively. Independent of the fuzzy
// overlap boosts.
func includesExactTag(queryTokens token.Set, tags []string) bool {
	for _, tag := range tags {
		if queryTokens.Has(strings.ToLower(tag)) {
			return true
		}
	}
	return false
}

// matchSummary lists the fields with semantic overlap to the query, in the
// canonical field order.
func matchSummary(queryTokens token.Set, ft fieldTokens, pol Policy) []string {
	var summary []string
	for _, field := range fieldOrder {
		tokens, ok := ft[field]
		if !ok {
			continue
		}
		if hasOverlap(queryTokens, tokens, pol.OverlapSimilarity) {
			summary = append(summary, field)
		}
	}
	return summary
}
