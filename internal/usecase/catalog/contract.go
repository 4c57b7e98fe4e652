package catalog

import (
	"context"

	domcat "github.com/marketfleet/searchd/internal/domain/catalog"
)

// Repository is the storage contract for the product search copy.
type Repository interface {
	EnsureIndex(ctx context.Context) error
	Upsert(ctx context.Context, p *domcat.Product) error
	Exists(ctx context.Context, id string) (bool, error)
	Get(ctx context.Context, id string) (domcat.Product, error)
	Delete(ctx context.Context, id string) error
}
