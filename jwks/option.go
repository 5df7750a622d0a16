package jwks

import (
	"fmt"
	"net/http"
	"time"
)

// Option is how options for the Client are set up.
type Option func(*clientConfig) error

// clientConfig holds internal configuration for creating a Client.
type clientConfig struct {
	cacheMaxSize int
	cacheTTL     time.Duration
	httpClient   *http.Client
	logger       Logger
	metrics      Metrics
}

// WithCacheMaxSize bounds the number of encoded keys kept in the
// cache. If not specified, defaults to 20.
func WithCacheMaxSize(maxSize int) Option {
	return func(c *clientConfig) error {
		if maxSize <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("cache max size must be positive, got %d", maxSize)}
		}
		c.cacheMaxSize = maxSize
		return nil
	}
}

// WithCacheTTL sets the idle expiry for cached keys. If not specified,
// cached keys never expire by time; LRU eviction is the only rotation
// mechanism.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *clientConfig) error {
		if ttl <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("cache ttl must be positive, got %s", ttl)}
		}
		c.cacheTTL = ttl
		return nil
	}
}

// WithHTTPClient sets a custom HTTP client for key set fetches.
// If not specified, a default client with a 30s timeout is used.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) error {
		if client == nil {
			return &ConfigError{Reason: "HTTP client cannot be nil"}
		}
		c.httpClient = client
		return nil
	}
}

// WithLogger sets an optional logger for the Client.
func WithLogger(logger Logger) Option {
	return func(c *clientConfig) error {
		if logger == nil {
			return &ConfigError{Reason: "logger cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithMetrics sets an optional metrics sink for the Client.
func WithMetrics(metrics Metrics) Option {
	return func(c *clientConfig) error {
		if metrics == nil {
			return &ConfigError{Reason: "metrics cannot be nil"}
		}
		c.metrics = metrics
		return nil
	}
}
