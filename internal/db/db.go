// Package db defines the document-store contract the service depends on.
// Implementations live in subpackages; consumers depend on the narrow
// sub-interfaces they actually use.
package db

import (
	"context"
	"time"
)

// Store is the main database facade combining all sub-interfaces.
type Store interface {
	Pinger
	JSONStore
	IndexManager
	KeySearcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JSONStore provides JSON document operations.
type JSONStore interface {
	JSONSet(ctx context.Context, key, path string, data []byte) error
	JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error)
	// JSONGetMulti fetches one path from many keys in a single pipelined
	// round trip. Missing keys yield nil entries, not errors.
	JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// KeyPage is one page of matching keys from a key search.
type KeyPage struct {
	Total int
	Keys  []string
}

// KeySearcher provides filtered key listing over FT indexes.
type KeySearcher interface {
	// SearchKeys runs an FT.SEARCH returning only document keys
	// (NOCONTENT), paginated by offset/limit.
	SearchKeys(ctx context.Context, index, query string, offset, limit int) (*KeyPage, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}
