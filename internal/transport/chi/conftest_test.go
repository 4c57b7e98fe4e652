package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/marketfleet/searchd/internal/domain"
	"github.com/marketfleet/searchd/internal/domain/catalog"
	"github.com/marketfleet/searchd/internal/domain/search/query"
	"github.com/marketfleet/searchd/internal/domain/search/token"
	cataloguc "github.com/marketfleet/searchd/internal/usecase/catalog"
	healthuc "github.com/marketfleet/searchd/internal/usecase/health"
	searchuc "github.com/marketfleet/searchd/internal/usecase/search"
)

// --- Mocks ---

// mockBackend implements the search and catalog repository contracts plus the
// health pinger, backed by an in-memory product map.
type mockBackend struct {
	products map[string]catalog.Product

	findErr error
	pingErr error
}

func newMockBackend(products ...catalog.Product) *mockBackend {
	m := &mockBackend{products: map[string]catalog.Product{}}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockBackend) FindCandidates(
	_ context.Context, _ *query.Query, _ token.Set,
) ([]catalog.Product, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	out := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockBackend) EnsureIndex(_ context.Context) error { return nil }

func (m *mockBackend) Upsert(_ context.Context, p *catalog.Product) error {
	m.products[p.ID] = *p
	return nil
}

func (m *mockBackend) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.products[id]
	return ok, nil
}

func (m *mockBackend) Get(_ context.Context, id string) (catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return catalog.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockBackend) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

func (m *mockBackend) Ping(_ context.Context) error { return m.pingErr }

// --- Helpers ---

func newTestRouter(t *testing.T, backend *mockBackend) *chi.Mux {
	t.Helper()
	server := NewServer(
		searchuc.New(backend, searchuc.DefaultPolicy()),
		cataloguc.New(backend),
		healthuc.New(backend),
		zap.NewNop(),
	)
	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func testPhone() catalog.Product {
	return catalog.Product{
		ID:       "p1",
		Name:     "Galaxy Smartphone",
		Tags:     []string{"mobile"},
		Status:   "active",
		Brand:    catalog.Ref{ID: "b1", Name: "Samsung"},
		Category: catalog.Ref{ID: "c1", Name: "Phones"},
		Variants: []catalog.Variant{{SKU: "PHN-128", Price: 699}},
	}
}
