// Package searchd embeds the product search engine in-process: the same
// ranking pipeline the HTTP server runs, over a Valkey or Redis store,
// without the transport layer.
package searchd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/marketfleet/searchd/internal/db"
	dbRedis "github.com/marketfleet/searchd/internal/db/redis"
	catalogrepo "github.com/marketfleet/searchd/internal/repository/catalog"
	cataloguc "github.com/marketfleet/searchd/internal/usecase/catalog"
	searchuc "github.com/marketfleet/searchd/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the searchd SDK entry point.
type Client struct {
	store      db.Store
	catalogSvc *cataloguc.Service
	searchSvc  *searchuc.Service
}

// New creates a searchd Client, connects to the database, and ensures the
// product index exists.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		keyPrefix: "searchd:",
	}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("searchd: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: database not ready: %w", err)
	}

	c, err := wireClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := c.catalogSvc.Bootstrap(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("searchd: bootstrap index: %w", err)
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("searchd: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("searchd: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) (*Client, error) {
	repo := catalogrepo.New(store, cfg.keyPrefix)
	if cfg.candidateCap > 0 || cfg.pageSize > 0 {
		repo = repo.WithCandidateCap(cfg.candidateCap, cfg.pageSize)
	}

	policy := searchuc.DefaultPolicy()
	if cfg.policy != nil {
		policy = *cfg.policy
	}

	return &Client{
		store:      store,
		catalogSvc: cataloguc.New(repo),
		searchSvc:  searchuc.New(repo, policy),
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Products returns the product ingestion service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.catalogSvc}
}
