package searchd

import searchuc "github.com/marketfleet/searchd/internal/usecase/search"

// Option configures the embedded client.
type Option func(*clientConfig)

type clientConfig struct {
	driver       string
	addrs        []string
	password     string
	keyPrefix    string
	candidateCap int
	pageSize     int
	policy       *searchuc.Policy
}

// WithValkey connects to a Valkey server.
func WithValkey(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithRedis connects to a Redis server.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix namespaces all keys and the product index. Defaults to
// "searchd:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithCandidateCap bounds the candidate fetch for one search.
func WithCandidateCap(cap, pageSize int) Option {
	return func(c *clientConfig) {
		c.candidateCap = cap
		c.pageSize = pageSize
	}
}

// WithRankingPolicy overrides the default ranking thresholds and boosts.
func WithRankingPolicy(p RankingPolicy) Option {
	return func(c *clientConfig) {
		pol := searchuc.Policy(p)
		c.policy = &pol
	}
}

// RankingPolicy is the ranking threshold and boost table. Use
// DefaultRankingPolicy as the base when overriding individual values.
type RankingPolicy searchuc.Policy

// DefaultRankingPolicy returns the production ranking policy.
func DefaultRankingPolicy() RankingPolicy {
	return RankingPolicy(searchuc.DefaultPolicy())
}
