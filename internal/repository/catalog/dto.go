package catalog

import (
	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
)

// productDoc is the stored JSON shape of a product. Brand/category names are
// denormalized so ranking never needs a second lookup.
type productDoc struct {
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	Images       []string     `json:"images,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	SKU          string       `json:"sku,omitempty"`
	Status       string       `json:"status"`
	IsDeleted    bool         `json:"isDeleted"`
	Brand        *refDoc      `json:"brand,omitempty"`
	Category     *refDoc      `json:"category,omitempty"`
	SubCategory  *refDoc      `json:"subCategory,omitempty"`
	SellingPrice float64      `json:"sellingPrice,omitempty"`
	MRP          float64      `json:"mrp,omitempty"`
	Variants     []variantDoc `json:"variants,omitempty"`
}

type refDoc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type variantDoc struct {
	SKU        string         `json:"sku"`
	Price      float64        `json:"price"`
	MRP        float64        `json:"mrp,omitempty"`
	Stock      int            `json:"stock,omitempty"`
	Attributes []attributeDoc `json:"attributes,omitempty"`
}

type attributeDoc struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func docFromDomain(p *domcat.Product) productDoc {
	doc := productDoc{
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		SKU:          p.SKU,
		Status:       p.Status,
		IsDeleted:    p.IsDeleted,
		Brand:        refFromDomain(p.Brand),
		Category:     refFromDomain(p.Category),
		SubCategory:  refFromDomain(p.SubCategory),
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		vd := variantDoc{SKU: v.SKU, Price: v.Price, MRP: v.MRP, Stock: v.Stock}
		for _, a := range v.Attributes {
			vd.Attributes = append(vd.Attributes, attributeDoc{Type: a.Type, Value: a.Value})
		}
		doc.Variants = append(doc.Variants, vd)
	}
	return doc
}

func (d *productDoc) toDomain(id string) domcat.Product {
	p := domcat.Product{
		ID:           id,
		Name:         d.Name,
		Description:  d.Description,
		Images:       d.Images,
		Tags:         d.Tags,
		SKU:          d.SKU,
		Status:       d.Status,
		IsDeleted:    d.IsDeleted,
		Brand:        refToDomain(d.Brand),
		Category:     refToDomain(d.Category),
		SubCategory:  refToDomain(d.SubCategory),
		SellingPrice: d.SellingPrice,
		MRP:          d.MRP,
	}
	for i := range d.Variants {
		vd := &d.Variants[i]
		v := domcat.Variant{SKU: vd.SKU, Price: vd.Price, MRP: vd.MRP, Stock: vd.Stock}
		for _, a := range vd.Attributes {
			v.Attributes = append(v.Attributes, domcat.Attribute{Type: a.Type, Value: a.Value})
		}
		p.Variants = append(p.Variants, v)
	}
	return p
}

func refFromDomain(r domcat.Ref) *refDoc {
	if r.IsZero() {
		return nil
	}
	return &refDoc{ID: r.ID, Name: r.Name}
}

func refToDomain(r *refDoc) domcat.Ref {
	if r == nil {
		return domcat.Ref{}
	}
	return domcat.Ref{ID: r.ID, Name: r.Name}
}
