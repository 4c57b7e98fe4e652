// Package catalog maintains the denormalized product documents the search
// pipeline reads.
package catalog

import (
	"context"
	"fmt"

	"github.com/marketfleet/searchd/internal/domain"
	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
)

// Service handles product ingestion into the search copy.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Bootstrap prepares the store for serving: creates the product index when
// missing.
func (s *Service) Bootstrap(ctx context.Context) error {
	if err := s.repo.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure product index: %w", err)
	}
	return nil
}

// Upsert validates and writes one product document. Returns true when the
// product did not exist before.
func (s *Service) Upsert(ctx context.Context, p *domcat.Product) (bool, error) {
	if p.ID == "" {
		return false, fmt.Errorf("%w: id is required", domain.ErrInvalidProduct)
	}
	if p.Name == "" {
		return false, fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if p.Status == "" {
		p.Status = "draft"
	}
	for i := range p.Variants {
		if p.Variants[i].SKU == "" {
			return false, fmt.Errorf("%w: variant %d is missing sku", domain.ErrInvalidProduct, i)
		}
	}

	exists, err := s.repo.Exists(ctx, p.ID)
	if err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return false, fmt.Errorf("upsert product: %w", err)
	}
	return !exists, nil
}

// Get fetches one product by ID.
func (s *Service) Get(ctx context.Context, id string) (domcat.Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return domcat.Product{}, err
	}
	return p, nil
}

// Delete removes a product from the search copy.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
