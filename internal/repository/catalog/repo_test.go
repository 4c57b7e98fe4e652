package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/marketfleet/searchd/internal/db"
	"github.com/marketfleet/searchd/internal/domain"
	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
)

func mustQuery(t *testing.T, text string, categories, brands []string, price *query.PriceRange) *query.Query {
	t.Helper()
	q, err := query.New(text, 0, categories, brands, price)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

func docJSON(t *testing.T, p *domcat.Product) []byte {
	t.Helper()
	doc := docFromDomain(p)
	raw, err := json.Marshal([]productDoc{doc}) // JSON.GET "$" wraps in an array
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	return raw
}

func TestBuildStructuralQuery(t *testing.T) {
	min, max := 10.0, 99.5

	tests := []struct {
		name string
		q    *query.Query
		want string
	}{
		{
			name: "bare query",
			q:    mustQuery(t, "shoes", nil, nil, nil),
			want: "@status:{active} @deleted:{false}",
		},
		{
			name: "category filter",
			q:    mustQuery(t, "shoes", []string{"cat1", "cat2"}, nil, nil),
			want: "@status:{active} @deleted:{false} @category:{cat1|cat2}",
		},
		{
			name: "brand filter escapes specials",
			q:    mustQuery(t, "shoes", nil, []string{"brand-x"}, nil),
			want: `@status:{active} @deleted:{false} @brand:{brand\-x}`,
		},
		{
			name: "price range",
			q:    mustQuery(t, "shoes", nil, nil, &query.PriceRange{Min: &min, Max: &max}),
			want: "@status:{active} @deleted:{false} @price:[10 99.5]",
		},
		{
			name: "open ended price",
			q:    mustQuery(t, "shoes", nil, nil, &query.PriceRange{Min: &min}),
			want: "@status:{active} @deleted:{false} @price:[10 +inf]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildStructuralQuery(tt.q); got != tt.want {
				t.Errorf("buildStructuralQuery = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateRegex(t *testing.T) {
	re := candidateRegex(token.NewSet("phone", "mobile"), "ignored")
	for _, s := range []string{"Smartphone", "MOBILE cover", "my phone"} {
		if !re.MatchString(s) {
			t.Errorf("regex should match %q", s)
		}
	}
	if re.MatchString("garden hose") {
		t.Error("regex should not match unrelated text")
	}

	// Empty token set falls back to the raw query.
	re = candidateRegex(token.Set{}, "  c++ ")
	if !re.MatchString("learn c++ fast") {
		t.Error("fallback regex should match the raw query literally")
	}
}

func TestFindCandidates(t *testing.T) {
	phone := domcat.Product{ID: "p1", Name: "Galaxy Phone", Status: "active"}
	hose := domcat.Product{ID: "p2", Name: "Garden Hose", Status: "active"}

	store := &mockStore{
		searchKeysFn: func(_ context.Context, index, q string, offset, limit int) (*db.KeyPage, error) {
			if !strings.Contains(q, "@status:{active}") {
				t.Errorf("structural query missing status clause: %q", q)
			}
			if offset > 0 {
				return &db.KeyPage{Total: 2}, nil
			}
			return &db.KeyPage{Total: 2, Keys: []string{"searchd:product:p1", "searchd:product:p2"}}, nil
		},
		jsonGetMultiFn: func(_ context.Context, keys []string, _ string) ([][]byte, error) {
			return [][]byte{docJSON(t, &phone), docJSON(t, &hose)}, nil
		},
	}
	repo := New(store, "searchd:")

	got, err := repo.FindCandidates(context.Background(), mustQuery(t, "phone", nil, nil, nil), token.NewSet("phone"))
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("candidates = %+v, want just p1", got)
	}
}

func TestFindCandidates_CapStopsPaging(t *testing.T) {
	doc := domcat.Product{ID: "x", Name: "Red Shoes", Status: "active"}
	pages := 0

	store := &mockStore{
		searchKeysFn: func(_ context.Context, _, _ string, offset, limit int) (*db.KeyPage, error) {
			pages++
			keys := make([]string, limit)
			for i := range keys {
				keys[i] = "searchd:product:x"
			}
			return &db.KeyPage{Total: 10000, Keys: keys}, nil
		},
		jsonGetMultiFn: func(_ context.Context, keys []string, _ string) ([][]byte, error) {
			out := make([][]byte, len(keys))
			for i := range out {
				out[i] = docJSON(t, &doc)
			}
			return out, nil
		},
	}
	repo := New(store, "searchd:").WithCandidateCap(7, 3)

	got, err := repo.FindCandidates(context.Background(), mustQuery(t, "shoes", nil, nil, nil), token.NewSet("shoes"))
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(got) != 7 {
		t.Errorf("candidates = %d, want capped at 7", len(got))
	}
	if pages != 3 {
		t.Errorf("pages fetched = %d, want 3", pages)
	}
}

func TestFindCandidates_SkipsMalformed(t *testing.T) {
	good := domcat.Product{ID: "ok", Name: "Red Shoes", Status: "active"}

	store := &mockStore{
		searchKeysFn: func(_ context.Context, _, _ string, offset, _ int) (*db.KeyPage, error) {
			if offset > 0 {
				return &db.KeyPage{Total: 3}, nil
			}
			return &db.KeyPage{
				Total: 3,
				Keys:  []string{"searchd:product:gone", "searchd:product:bad", "searchd:product:ok"},
			}, nil
		},
		jsonGetMultiFn: func(_ context.Context, keys []string, _ string) ([][]byte, error) {
			return [][]byte{nil, []byte("{not json"), docJSON(t, &good)}, nil
		},
	}
	repo := New(store, "searchd:")

	got, err := repo.FindCandidates(context.Background(), mustQuery(t, "shoes", nil, nil, nil), token.NewSet("shoes"))
	if err != nil {
		t.Fatalf("FindCandidates: %v", err)
	}
	if len(got) != 1 || got[0].ID != "ok" {
		t.Errorf("candidates = %+v, want just ok", got)
	}
}

func TestFindCandidates_SearchError(t *testing.T) {
	searchErr := errors.New("index gone")
	store := &mockStore{
		searchKeysFn: func(_ context.Context, _, _ string, _, _ int) (*db.KeyPage, error) {
			return nil, searchErr
		},
	}
	repo := New(store, "searchd:")

	_, err := repo.FindCandidates(context.Background(), mustQuery(t, "shoes", nil, nil, nil), token.NewSet("shoes"))
	if !errors.Is(err, searchErr) {
		t.Errorf("error = %v, want wrapped %v", err, searchErr)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := New(&mockStore{}, "searchd:")

	_, err := repo.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("error = %v, want ErrProductNotFound", err)
	}
}

func TestUpsertGetRoundTrip(t *testing.T) {
	var stored []byte
	store := &mockStore{
		jsonSetFn: func(_ context.Context, key, path string, data []byte) error {
			if key != "searchd:product:p1" {
				t.Errorf("key = %q", key)
			}
			if path != "$" {
				t.Errorf("path = %q", path)
			}
			stored = data
			return nil
		},
		jsonGetFn: func(_ context.Context, _ string, _ ...string) ([]byte, error) {
			return append(append([]byte("["), stored...), ']'), nil
		},
	}
	repo := New(store, "searchd:")

	in := domcat.Product{
		ID: "p1", Name: "Galaxy Phone", Status: "active",
		Brand:    domcat.Ref{ID: "b1", Name: "Samsung"},
		Variants: []domcat.Variant{{SKU: "V1", Price: 699}},
	}
	if err := repo.Upsert(context.Background(), &in); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.Get(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != in.Name || got.Brand.Name != "Samsung" || len(got.Variants) != 1 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestEnsureIndex(t *testing.T) {
	t.Run("skips when present", func(t *testing.T) {
		created := false
		store := &mockStore{
			indexExistsFn: func(_ context.Context, name string) (bool, error) { return true, nil },
			createIndexFn: func(_ context.Context, _ *db.IndexDefinition) error {
				created = true
				return nil
			},
		}
		if err := New(store, "searchd:").EnsureIndex(context.Background()); err != nil {
			t.Fatalf("EnsureIndex: %v", err)
		}
		if created {
			t.Error("index created although it already exists")
		}
	})

	t.Run("creates with expected fields", func(t *testing.T) {
		var def *db.IndexDefinition
		store := &mockStore{
			createIndexFn: func(_ context.Context, d *db.IndexDefinition) error {
				def = d
				return nil
			},
		}
		if err := New(store, "searchd:").EnsureIndex(context.Background()); err != nil {
			t.Fatalf("EnsureIndex: %v", err)
		}
		if def == nil {
			t.Fatal("index never created")
		}
		if def.Name != "searchd:products:idx" {
			t.Errorf("index name = %q", def.Name)
		}
		aliases := map[string]bool{}
		for _, f := range def.Fields {
			aliases[f.Alias] = true
		}
		for _, want := range []string{"status", "deleted", "category", "brand", "price"} {
			if !aliases[want] {
				t.Errorf("index missing field %q", want)
			}
		}
	})

	t.Run("tolerates concurrent creation", func(t *testing.T) {
		store := &mockStore{
			createIndexFn: func(_ context.Context, _ *db.IndexDefinition) error {
				return db.ErrIndexExists
			},
		}
		if err := New(store, "searchd:").EnsureIndex(context.Background()); err != nil {
			t.Fatalf("EnsureIndex: %v", err)
		}
	})
}
