package chi

import (
	"encoding/json"
	"math"

	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
	searchuc "github.com/marketfleet/searchd/internal/usecase/search"
)

// stringList accepts either a JSON string or an array of strings, matching
// the flexible category/brand filter shapes clients send.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one != "" {
			*s = stringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = stringList(many)
	return nil
}

// searchRequest is the POST /search body. Singular and plural filter keys
// are both accepted and merged.
type searchRequest struct {
	Query      string        `json:"query"`
	Limit      int           `json:"limit"`
	Category   stringList    `json:"category"`
	Categories stringList    `json:"categories"`
	Brand      stringList    `json:"brand"`
	Brands     stringList    `json:"brands"`
	Price      *priceFilter  `json:"price"`
}

type priceFilter struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// searchResponse is the POST /search success envelope.
type searchResponse struct {
	Success  bool           `json:"success"`
	Data     []scoredResult `json:"data"`
	Extras   []scoredResult `json:"extras"`
	Metadata searchMetadata `json:"metadata"`
}

type searchMetadata struct {
	Query          string   `json:"query"`
	QueryTokens    []string `json:"queryTokens"`
	RequestedLimit int      `json:"requestedLimit"`
	Limit          int      `json:"limit"`
	SecondaryLimit int      `json:"secondaryLimit"`

	TotalCandidates int `json:"totalCandidates"`
	TotalRanked     int `json:"totalRanked"`
	TotalPrimary    int `json:"totalPrimary"`
	TotalExtras     int `json:"totalExtras"`
	ReturnedPrimary int `json:"returnedPrimary"`
	ReturnedExtras  int `json:"returnedExtras"`
}

type scoredResult struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description,omitempty"`
	Images       []string           `json:"images,omitempty"`
	Tags         []string           `json:"tags,omitempty"`
	Brand        *refPayload        `json:"brand"`
	Category     *refPayload        `json:"category"`
	SubCategory  *refPayload        `json:"subCategory"`
	PriceRange   *priceRangePayload `json:"priceRange"`
	Similarity   float64            `json:"similarity"`
	Score        float64            `json:"score"`
	MatchSummary []string           `json:"matchSummary"`
}

type refPayload struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type priceRangePayload struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func searchResponseFrom(res *searchuc.Result) searchResponse {
	part := res.Partition
	queryTokens := res.QueryTokens
	if queryTokens == nil {
		queryTokens = []string{}
	}
	return searchResponse{
		Success: true,
		Data:    scoredResultsFrom(part.Primary),
		Extras:  scoredResultsFrom(part.Extras),
		Metadata: searchMetadata{
			Query:           res.Query,
			QueryTokens:     queryTokens,
			RequestedLimit:  res.RequestedLimit,
			Limit:           part.PrimaryLimit,
			SecondaryLimit:  part.ExtrasLimit,
			TotalCandidates: res.TotalCandidates,
			TotalRanked:     res.TotalRanked,
			TotalPrimary:    part.TotalPrimary,
			TotalExtras:     part.TotalExtras,
			ReturnedPrimary: len(part.Primary),
			ReturnedExtras:  len(part.Extras),
		},
	}
}

func scoredResultsFrom(entries []searchuc.Scored) []scoredResult {
	out := make([]scoredResult, len(entries))
	for i := range entries {
		out[i] = scoredResultFrom(&entries[i])
	}
	return out
}

func scoredResultFrom(s *searchuc.Scored) scoredResult {
	p := s.Product
	r := scoredResult{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		Brand:        refPayloadFrom(p.Brand),
		Category:     refPayloadFrom(p.Category),
		SubCategory:  refPayloadFrom(p.SubCategory),
		Similarity:   round3(s.Similarity),
		Score:        round3(s.Score),
		MatchSummary: s.MatchSummary,
	}
	if r.MatchSummary == nil {
		r.MatchSummary = []string{}
	}
	if pr := p.PriceRange(); pr != nil {
		r.PriceRange = &priceRangePayload{Min: pr.Min, Max: pr.Max}
	}
	return r
}

func refPayloadFrom(r domcat.Ref) *refPayload {
	if r.IsZero() {
		return nil
	}
	return &refPayload{ID: r.ID, Name: r.Name}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// productPayload is the PUT /products/{id} body and the GET response shape.
type productPayload struct {
	Name         string           `json:"name"`
	Description  string           `json:"description,omitempty"`
	Images       []string         `json:"images,omitempty"`
	Tags         []string         `json:"tags,omitempty"`
	SKU          string           `json:"sku,omitempty"`
	Status       string           `json:"status,omitempty"`
	IsDeleted    bool             `json:"isDeleted,omitempty"`
	Brand        *refPayload      `json:"brand,omitempty"`
	Category     *refPayload      `json:"category,omitempty"`
	SubCategory  *refPayload      `json:"subCategory,omitempty"`
	SellingPrice float64          `json:"sellingPrice,omitempty"`
	MRP          float64          `json:"mrp,omitempty"`
	Variants     []variantPayload `json:"variants,omitempty"`
}

type variantPayload struct {
	SKU        string             `json:"sku"`
	Price      float64            `json:"price"`
	MRP        float64            `json:"mrp,omitempty"`
	Stock      int                `json:"stock,omitempty"`
	Attributes []attributePayload `json:"attributes,omitempty"`
}

type attributePayload struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (p *productPayload) toDomain(id string) domcat.Product {
	prod := domcat.Product{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		SKU:          p.SKU,
		Status:       p.Status,
		IsDeleted:    p.IsDeleted,
		Brand:        refToDomain(p.Brand),
		Category:     refToDomain(p.Category),
		SubCategory:  refToDomain(p.SubCategory),
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
	}
	for _, v := range p.Variants {
		variant := domcat.Variant{SKU: v.SKU, Price: v.Price, MRP: v.MRP, Stock: v.Stock}
		for _, a := range v.Attributes {
			variant.Attributes = append(variant.Attributes, domcat.Attribute{Type: a.Type, Value: a.Value})
		}
		prod.Variants = append(prod.Variants, variant)
	}
	return prod
}

func productPayloadFrom(p *domcat.Product) productPayload {
	payload := productPayload{
		Name:         p.Name,
		Description:  p.Description,
		Images:       p.Images,
		Tags:         p.Tags,
		SKU:          p.SKU,
		Status:       p.Status,
		IsDeleted:    p.IsDeleted,
		Brand:        refPayloadFrom(p.Brand),
		Category:     refPayloadFrom(p.Category),
		SubCategory:  refPayloadFrom(p.SubCategory),
		SellingPrice: p.SellingPrice,
		MRP:          p.MRP,
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		vp := variantPayload{SKU: v.SKU, Price: v.Price, MRP: v.MRP, Stock: v.Stock}
		for _, a := range v.Attributes {
			vp.Attributes = append(vp.Attributes, attributePayload{Type: a.Type, Value: a.Value})
		}
		payload.Variants = append(payload.Variants, vp)
	}
	return payload
}

func refToDomain(r *refPayload) domcat.Ref {
	if r == nil {
		return domcat.Ref{}
	}
	return domcat.Ref{ID: r.ID, Name: r.Name}
}

// mergeLists concatenates the singular and plural filter forms.
func mergeLists(a, b stringList) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
