package searchd

import (
	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
	searchuc "github.com/marketfleet/searchd/internal/usecase/search"
)

// Attribute is a single variant attribute, e.g. {Type: "color", Value: "red"}.
type Attribute struct {
	Type  string
	Value string
}

// Variant is one sellable variation of a product.
type Variant struct {
	SKU        string
	Price      float64
	MRP        float64
	Stock      int
	Attributes []Attribute
}

// Ref is a resolved reference to a named catalog entity.
type Ref struct {
	ID   string
	Name string
}

// Product is a catalog entry in the search copy.
type Product struct {
	ID           string
	Name         string
	Description  string
	Images       []string
	Tags         []string
	SKU          string
	Status       string
	IsDeleted    bool
	Brand        Ref
	Category     Ref
	SubCategory  Ref
	SellingPrice float64
	MRP          float64
	Variants     []Variant
}

// PriceRange is a min/max price span.
type PriceRange struct {
	Min float64
	Max float64
}

// ScoredProduct is one ranked search result.
type ScoredProduct struct {
	Product      Product
	PriceRange   *PriceRange
	Similarity   float64
	Score        float64
	MatchSummary []string
}

// SearchResult is a complete two-tier search outcome.
type SearchResult struct {
	Primary []ScoredProduct
	Extras  []ScoredProduct

	QueryTokens     []string
	TotalCandidates int
	TotalRanked     int
	TotalPrimary    int
	TotalExtras     int
}

func toDomainProduct(p *Product) domcat.Product {
	out := domcat.Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		SKU:          p.SKU,
		Status:       p.Status,
		IsDeleted:    p.IsDeleted,
		Brand:        domcat.Ref(p.Brand),
		Category:     domcat.Ref(p.Category),
		SubCategory:  domcat.Ref(p.SubCategory),
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
	}
	for _, v := range p.Variants {
		variant := domcat.Variant{SKU: v.SKU, Price: v.Price, MRP: v.MRP, Stock: v.Stock}
		for _, a := range v.Attributes {
			variant.Attributes = append(variant.Attributes, domcat.Attribute(a))
		}
		out.Variants = append(out.Variants, variant)
	}
	return out
}

func fromDomainProduct(p *domcat.Product) Product {
	out := Product{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		SKU:          p.SKU,
		Status:       p.Status,
		IsDeleted:    p.IsDeleted,
		Brand:        Ref(p.Brand),
		Category:     Ref(p.Category),
		SubCategory:  Ref(p.SubCategory),
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
	}
	for _, v := range p.Variants {
		variant := Variant{SKU: v.SKU, Price: v.Price, MRP: v.MRP, Stock: v.Stock}
		for _, a := range v.Attributes {
			variant.Attributes = append(variant.Attributes, Attribute(a))
		}
		out.Variants = append(out.Variants, variant)
	}
	return out
}

func fromScored(entries []searchuc.Scored) []ScoredProduct {
	out := make([]ScoredProduct, len(entries))
	for i := range entries {
		s := &entries[i]
		sp := ScoredProduct{
			Product:      fromDomainProduct(s.Product),
			Similarity:   s.Similarity,
			Score:        s.Score,
			MatchSummary: s.MatchSummary,
		}
		if pr := s.Product.PriceRange(); pr != nil {
			sp.PriceRange = &PriceRange{Min: pr.Min, Max: pr.Max}
		}
		out[i] = sp
	}
	return out
}
