// Package query defines the validated search query value object.
package query

import (
	"strings"

	"github.com/marketfleet/searchd/internal/domain"
)

// Result limit bounds.
const (
	DefaultLimit = 20
	MaxLimit     = 50
)

// PriceRange is an optional price filter; nil bounds are unbounded.
type PriceRange struct {
	Min *float64
	Max *float64
}

// IsEmpty reports whether neither bound is set.
func (p *PriceRange) IsEmpty() bool {
	return p == nil || (p.Min == nil && p.Max == nil)
}

// Query is a validated, immutable search request. It lives for the duration
// of one search call and is never persisted.
type Query struct {
	text       string
	limit      int
	categories []string
	brands     []string
	price      *PriceRange
}

// New validates and normalizes search parameters. Empty or blank query text
// is rejected before any store access. The limit defaults to DefaultLimit
// and is clamped to [1, MaxLimit].
func New(text string, limit int, categories, brands []string, price *PriceRange) (Query, error) {
	if strings.TrimSpace(text) == "" {
		return Query{}, domain.ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if price.IsEmpty() {
		price = nil
	}

	return Query{
		text:       text,
		limit:      limit,
		categories: cleanIDs(categories),
		brands:     cleanIDs(brands),
		price:      price,
	}, nil
}

// Text returns the raw query text.
func (q *Query) Text() string { return q.text }

// Limit returns the clamped primary result limit.
func (q *Query) Limit() int { return q.limit }

// Categories returns the category ID filter (empty means no filter).
func (q *Query) Categories() []string { return q.categories }

// Brands returns the brand ID filter (empty means no filter).
func (q *Query) Brands() []string { return q.brands }

// Price returns the price filter (nil means no filter).
func (q *Query) Price() *PriceRange { return q.price }

// cleanIDs trims entries and drops blanks.
func cleanIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
