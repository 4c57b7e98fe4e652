// Package catalog persists the search copy of the product catalog and
// implements the coarse candidate pre-filter for ranking.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/marketfleet/searchd/internal/db"
	"github.com/marketfleet/searchd/internal/domain"
	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

// Candidate fetch defaults. The cap bounds ranking cost regardless of how
// many documents pass the structural filter.
const (
	DefaultCandidateCap = 200
	DefaultPageSize     = 50
)

// store is the consumer interface for catalog operations (ISP).
type store interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKeys(ctx context.Context, index, query string, offset, limit int) (*db.KeyPage, error)
}

// Repo stores product documents as JSON and pre-filters search candidates
// through an FT index on status, deletion flag, category, brand, and price.
type Repo struct {
	store     store
	keyPrefix string
	cap       int
	pageSize  int
}

// New creates a catalog repository. keyPrefix namespaces all keys.
func New(s store, keyPrefix string) *Repo {
	return &Repo{
		store:     s,
		keyPrefix: keyPrefix,
		cap:       DefaultCandidateCap,
		pageSize:  DefaultPageSize,
	}
}

// WithCandidateCap overrides the candidate cap and fetch page size.
func (r *Repo) WithCandidateCap(cap, pageSize int) *Repo {
	if cap > 0 {
		r.cap = cap
	}
	if pageSize > 0 {
		r.pageSize = pageSize
	}
	return r
}

func (r *Repo) productKey(id string) string {
	return r.keyPrefix + "product:" + id
}

func (r *Repo) indexName() string {
	return r.keyPrefix + "products:idx"
}

// EnsureIndex creates the product FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def, err := db.NewIndex(r.indexName()).
		OnJSON().
		Prefix(r.keyPrefix + "product:").
		Tag("$.status", "status").
		Tag("$.isDeleted", "deleted").
		Tag("$.category.id", "category").
		Tag("$.brand.id", "brand").
		Numeric("$.variants[*].price", "price").
		Build()
	if err != nil {
		return fmt.Errorf("build index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// Upsert writes the full product document.
func (r *Repo) Upsert(ctx context.Context, p *domcat.Product) error {
	doc := docFromDomain(p)
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", p.ID, err)
	}
	if err := r.store.JSONSet(ctx, r.productKey(p.ID), "$", data); err != nil {
		return fmt.Errorf("store product %s: %w", p.ID, err)
	}
	return nil
}

// Exists reports whether a product document is stored under the given ID.
func (r *Repo) Exists(ctx context.Context, id string) (bool, error) {
	ok, err := r.store.Exists(ctx, r.productKey(id))
	if err != nil {
		return false, fmt.Errorf("check product %s: %w", id, err)
	}
	return ok, nil
}

// Get fetches one product by ID.
func (r *Repo) Get(ctx context.Context, id string) (domcat.Product, error) {
	raw, err := r.store.JSONGet(ctx, r.productKey(id), "$")
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domcat.Product{}, domain.ErrProductNotFound
		}
		return domcat.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	doc, err := unmarshalDoc(raw)
	if err != nil {
		return domcat.Product{}, fmt.Errorf("decode product %s: %w", id, err)
	}
	return doc.toDomain(id), nil
}

// Delete removes one product by ID.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.productKey(id)); err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	return nil
}

// FindCandidates returns up to the candidate cap of active, non-deleted
// products that pass the structural filter and whose searchable text matches
// at least one expanded query token. The index cannot evaluate regex, so the
// loose OR-of-tokens pass happens here while paging through structural
// matches. Malformed documents are skipped, never an error.
func (r *Repo) FindCandidates(
	ctx context.Context, q *query.Query, tokens token.Set,
) ([]domcat.Product, error) {
	ftQuery := buildStructuralQuery(q)
	re := candidateRegex(tokens, q.Text())

	var matched []domcat.Product
	offset := 0
	for len(matched) < r.cap {
		page, err := r.store.SearchKeys(ctx, r.indexName(), ftQuery, offset, r.pageSize)
		if err != nil {
			return nil, fmt.Errorf("search candidates: %w", err)
		}
		if len(page.Keys) == 0 {
			break
		}

		docs, err := r.store.JSONGetMulti(ctx, page.Keys, "$")
		if err != nil {
			return nil, fmt.Errorf("fetch candidates: %w", err)
		}

		for i, raw := range docs {
			if raw == nil {
				continue
			}
			doc, err := unmarshalDoc(raw)
			if err != nil {
				continue
			}
			p := doc.toDomain(strings.TrimPrefix(page.Keys[i], r.keyPrefix+"product:"))
			if matchesAnyField(&p, re) {
				matched = append(matched, p)
				if len(matched) == r.cap {
					break
				}
			}
		}

		offset += len(page.Keys)
		if offset >= page.Total {
			break
		}
	}

	return matched, nil
}

// unmarshalDoc decodes a JSON.GET "$" reply, which wraps the document in a
// one-element array.
func unmarshalDoc(raw []byte) (*productDoc, error) {
	var docs []productDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errors.New("empty document")
	}
	return &docs[0], nil
}

// buildStructuralQuery translates the query's structured filters into an
// FT.SEARCH expression over the indexed fields.
func buildStructuralQuery(q *query.Query) string {
	parts := []string{"@status:{active}", "@deleted:{false}"}

	if cats := q.Categories(); len(cats) > 0 {
		parts = append(parts, tagClause("category", cats))
	}
	if brands := q.Brands(); len(brands) > 0 {
		parts = append(parts, tagClause("brand", brands))
	}
	if price := q.Price(); price != nil {
		lo, hi := "-inf", "+inf"
		if price.Min != nil {
			lo = strconv.FormatFloat(*price.Min, 'f', -1, 64)
		}
		if price.Max != nil {
			hi = strconv.FormatFloat(*price.Max, 'f', -1, 64)
		}
		parts = append(parts, fmt.Sprintf("@price:[%s %s]", lo, hi))
	}

	return strings.Join(parts, " ")
}

func tagClause(field string, values []string) string {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = escapeTag(v)
	}
	return fmt.Sprintf("@%s:{%s}", field, strings.Join(escaped, "|"))
}

// escapeTag backslash-escapes characters with special meaning in TAG queries.
func escapeTag(v string) string {
	var sb strings.Builder
	for _, r := range v {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
		if !isAlnum {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// candidateRegex builds the loose case-insensitive OR of expanded query
// tokens, falling back to the raw trimmed query when tokenization produced
// nothing. Intentionally imprecise: true relevance judgment is the scorer's
// job, this pass only avoids under-fetching.
func candidateRegex(tokens token.Set, fallback string) *regexp.Regexp {
	values := tokens.Values()
	quoted := make([]string, 0, len(values))
	for _, t := range values {
		if t != "" {
			quoted = append(quoted, regexp.QuoteMeta(t))
		}
	}
	if len(quoted) == 0 {
		quoted = append(quoted, regexp.QuoteMeta(strings.TrimSpace(fallback)))
	}
	return regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
}

// matchesAnyField applies the regex across the searchable fields: name,
// description, tags, sku, variant skus, and variant attribute types/values.
func matchesAnyField(p *domcat.Product, re *regexp.Regexp) bool {
	if re.MatchString(p.Name) || re.MatchString(p.Description) || re.MatchString(p.SKU) {
		return true
	}
	for _, tag := range p.Tags {
		if re.MatchString(tag) {
			return true
		}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		if re.MatchString(v.SKU) {
			return true
		}
		for _, a := range v.Attributes {
			if re.MatchString(a.Type) || re.MatchString(a.Value) {
				return true
			}
		}
	}
	return false
}
