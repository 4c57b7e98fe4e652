package search

import (
	"strings"

	"github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

// Field names of the per-field token map, in the order the match summary
// reports them.
const (
	fieldName        = "name"
	fieldDescription = "description"
	fieldTags        = "tags"
	fieldSKU         = "sku"
	fieldBrand       = "brand"
	fieldCategory    = "category"
	fieldSubCategory = "subCategory"
	fieldVariants    = "variants"
)

var fieldOrder = []string{
	fieldName, fieldDescription, fieldTags, fieldSKU,
	fieldBrand, fieldCategory, fieldSubCategory, fieldVariants,
}

// strongFields are the fields whose overlap marks a structurally significant
// match for primary classification.
var strongFields = map[string]struct{}{
	fieldName: {}, fieldTags: {}, fieldBrand: {}, fieldCategory: {}, fieldVariants: {},
}

// fieldTokens maps a product field name to its token set. Built once per
// candidate and discarded after scoring.
type fieldTokens map[string]token.Set

// tokenizeProduct projects one candidate into its per-field token sets.
// Variant tokens aggregate every variant's sku and attribute type/value into
// one combined set; variants are never scored individually. Missing fields
// simply produce no entry.
func tokenizeProduct(p *catalog.Product) fieldTokens {
	ft := fieldTokens{
		fieldName:        token.BuildSet(p.Name),
		fieldDescription: token.BuildSet(p.Description),
		fieldTags:        token.BuildSet(strings.Join(p.Tags, " ")),
		fieldSKU:         token.BuildSet(p.SKU),
	}

	if p.Brand.Name != "" {
		ft[fieldBrand] = token.BuildSet(p.Brand.Name)
	}
	if p.Category.Name != "" {
		ft[fieldCategory] = token.BuildSet(p.Category.Name)
	}
	if p.SubCategory.Name != "" {
		ft[fieldSubCategory] = token.BuildSet(p.SubCategory.Name)
	}

	variantTokens := token.Set{}
	for i := range p.Variants {
		v := &p.Variants[i]
		variantTokens.AddAll(token.BuildSet(v.SKU))
		for _, a := range v.Attributes {
			variantTokens.AddAll(token.BuildSet(a.Type, a.Value))
		}
	}
	if variantTokens.Len() > 0 {
		ft[fieldVariants] = variantTokens
	}

	return ft
}

// combined returns the union of all field token sets.
func (ft fieldTokens) combined() token.Set {
	all := token.Set{}
	for _, tokens := range ft {
		all.AddAll(tokens)
	}
	return all
}
