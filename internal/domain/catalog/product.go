// Package catalog defines the denormalized product documents the search
// service reads. The catalog of record lives elsewhere; these documents carry
// the resolved brand/category names that ranking needs instead of object IDs.
package catalog

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

// Ref is a resolved reference to a named catalog entity (brand, category).
type Ref struct {
	ID   string
	Name string
}

// IsZero reports whether the reference is unset.
func (r Ref) IsZero() bool { return r.ID == "" && r.Name == "" }

// Product is a catalog entry as stored in the search copy.
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

// PriceRange is the min/max price span across a product's variants.
type PriceRange struct {
	Min float64
	Max float64
}

// PriceRange derives the product's price span. Variant prices win over the
// product-level sellingPrice/mrp pair. Returns nil when no price information
// is present; missing prices are tolerated, never an error.
func (p *Product) PriceRange() *PriceRange {
	var minPrice, maxPrice float64
	found := false
	for i := range p.Variants {
		price := p.Variants[i].Price
		if price <= 0 {
			continue
		}
		if !found || price < minPrice {
			minPrice = price
		}
		if !found || price > maxPrice {
			maxPrice = price
		}
		found = true
	}
	if found {
		return &PriceRange{Min: minPrice, Max: maxPrice}
	}

	if p.SellingPrice > 0 && p.MRP > 0 {
		return &PriceRange{Min: p.SellingPrice, Max: p.MRP}
	}
	if p.SellingPrice > 0 {
		return &PriceRange{Min: p.SellingPrice, Max: p.SellingPrice}
	}
	return nil
}
