package search

import (
	"context"

	"github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

// mockRepo implements Repository for tests.
type mockRepo struct {
	candidates []catalog.Product
	err        error

	called     bool
	lastQuery  *query.Query
	lastTokens token.Set
}

func (m *mockRepo) FindCandidates(
	_ context.Context, q *query.Query, tokens token.Set,
) ([]catalog.Product, error) {
	m.called = true
	m.lastQuery = q
	m.lastTokens = tokens
	return m.candidates, m.err
}

func mustQuery(text string, limit int) *query.Query {
	q, err := query.New(text, limit, nil, nil, nil)
	if err != nil {
		panic(err)
	}
	return &q
}

func phoneProduct(id, name string) catalog.Product {
	return catalog.Product{
		ID:          id,
		Name:        name,
		Description: "Latest flagship smartphone with OLED display",
		Tags:        []string{"mobile", "electronics"},
		Status:      "active",
		Brand:       catalog.Ref{ID: "b1", Name: "Samsung"},
		Category:    catalog.Ref{ID: "c1", Name: "Phones"},
		Variants: []catalog.Variant{
			{SKU: "PHN-128", Price: 699, Attributes: []catalog.Attribute{{Type: "storage", Value: "128gb"}}},
		},
	}
}
