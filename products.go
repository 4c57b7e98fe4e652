package searchd

import (
	"context"
	"fmt"

	cataloguc "github.com/marketfleet/searchd/internal/usecase/catalog"
)

// ProductService ingests products into the search copy.
type ProductService struct {
	svc *cataloguc.Service
}

// Upsert validates and writes one product. Returns true when the product did
// not exist before.
func (s *ProductService) Upsert(ctx context.Context, p Product) (bool, error) {
	dom := toDomainProduct(&p)
	created, err := s.svc.Upsert(ctx, &dom)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Get fetches one product by ID.
func (s *ProductService) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get: %w", err)
	}
	return fromDomainProduct(&p), nil
}

// Delete removes a product from the search copy.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
