package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/marketfleet/searchd/internal/db"
)

// SearchKeys runs FT.SEARCH with NOCONTENT, returning only matching document
// keys for the requested page.
func (s *Store) SearchKeys(ctx context.Context, index, query string, offset, limit int) (*db.KeyPage, error) {
	if index == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if query == "" {
		query = "*"
	}

	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, query,
			"NOCONTENT",
			"LIMIT", strconv.Itoa(offset), strconv.Itoa(limit),
			"DIALECT", "2",
		).Build()

	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseKeyPage(raw)
}

// SearchCount returns the number of matching documents via LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index, query string) (int, error) {
	if query == "" {
		query = "*"
	}
	cmd := s.b().Arbitrary("FT.SEARCH").
		Args(index, query, "LIMIT", "0", "0", "DIALECT", "2").Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := raw[0].AsInt64()
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return int(total), nil
}

// parseKeyPage parses a NOCONTENT reply: [total, key1, key2, ...].
func parseKeyPage(raw []rueidis.RedisMessage) (*db.KeyPage, error) {
	if len(raw) == 0 {
		return &db.KeyPage{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}

	page := &db.KeyPage{Total: int(total)}
	for _, msg := range raw[1:] {
		key, err := msg.ToString()
		if err != nil {
			continue
		}
		page.Keys = append(page.Keys, key)
	}
	return page, nil
}
