// Package jwks resolves JWT signing keys from a remote JSON Web Key
// Set endpoint.
//
// A Client fetches the key set over HTTP with a bounded retry loop,
// locates the requested key by id, validates that it is an RSA key of
// acceptable strength, encodes it as a PEM SubjectPublicKeyInfo block,
// and caches the encoded result in a bounded LRU cache so repeated
// validations for the same key id do not hit the network. Failed
// fetches and conversions are never cached; only a fully validated,
// successfully encoded key is stored.
package jwks

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/authkeep/go-jwt-verifier/cache"
)

const (
	defaultCacheMaxSize = 20

	fetchMaxAttempts = 3
	fetchRetryDelay  = 100 * time.Millisecond

	// minModulusBits is the OWASP minimum RSA modulus size.
	minModulusBits = 2048

	// maxResponseBytes bounds the key set response body. Key set
	// documents are typically well under 10KB.
	maxResponseBytes = 1 << 20
)

// Logger is an optional printf-style logging interface. Adapters for
// logrus, zap, and zerolog live in the root package.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Metrics is an optional metrics interface. A Prometheus-backed
// implementation lives in the root package.
type Metrics interface {
	IncCounter(name string, tags map[string]string)
	ObserveHistogram(name string, value float64, tags map[string]string)
	SetGauge(name string, value float64, tags map[string]string)
}

// Client resolves PEM-encoded public signing keys by key id from a
// remote key set endpoint, caching results to avoid repeated fetches.
// A Client is intended to be long-lived and shared across goroutines.
type Client struct {
	keySetURL  string
	httpClient *http.Client
	keys       *cache.Cache
	group      singleflight.Group
	logger     Logger
	metrics    Metrics

	// sleep separates retry attempts; injectable for tests.
	sleep func(time.Duration)
}

// NewClient builds a Client for the key set published at keySetURL.
func NewClient(keySetURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(keySetURL) == "" {
		return nil, &ConfigError{Reason: "key set URL is required but was blank"}
	}

	config := &clientConfig{
		cacheMaxSize: defaultCacheMaxSize,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(config); err != nil {
			return nil, err
		}
	}

	var cacheOpts []cache.Option
	if config.cacheTTL > 0 {
		cacheOpts = append(cacheOpts, cache.WithTTL(config.cacheTTL))
	}
	keys, err := cache.New(config.cacheMaxSize, cacheOpts...)
	if err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}

	return &Client{
		keySetURL:  keySetURL,
		httpClient: config.httpClient,
		keys:       keys,
		logger:     config.logger,
		metrics:    config.metrics,
		sleep:      time.Sleep,
	}, nil
}

// GetSigningKey returns the PEM-encoded public key for the given key
// id, serving from the cache when possible. Concurrent first-time
// requests for the same id are coalesced into a single fetch.
func (c *Client) GetSigningKey(ctx context.Context, keyID string) (string, error) {
	if pemKey, ok := c.keys.Get(keyID); ok {
		c.debugf("cache hit for key id %q", keyID)
		c.count("jwks_cache_hits", map[string]string{"kid": keyID})
		return pemKey, nil
	}
	c.debugf("cache miss for key id %q, fetching key set", keyID)
	c.count("jwks_cache_misses", map[string]string{"kid": keyID})

	value, err, _ := c.group.Do(keyID, func() (interface{}, error) {
		// A racing caller may have populated the cache while this
		// call waited on the flight group.
		if pemKey, ok := c.keys.Get(keyID); ok {
			return pemKey, nil
		}

		pemKey, err := c.resolveKey(ctx, keyID)
		if err != nil {
			return "", err
		}

		c.keys.Set(keyID, pemKey)
		c.gauge("jwks_cache_size", float64(c.keys.Len()), nil)
		return pemKey, nil
	})
	if err != nil {
		return "", err
	}

	return value.(string), nil
}

// Clear drops every cached key.
func (c *Client) Clear() {
	c.keys.Clear()
}

// CacheStats reports the size and configuration of the key cache.
func (c *Client) CacheStats() cache.Stats {
	return c.keys.Stats()
}

// resolveKey fetches the key set, locates keyID, validates the key and
// encodes it as PEM. It is the miss path of GetSigningKey.
func (c *Client) resolveKey(ctx context.Context, keyID string) (string, error) {
	set, err := c.fetchKeySet(ctx)
	if err != nil {
		return "", err
	}

	key := set.lookup(keyID)
	if key == nil {
		return "", &KeyNotFoundError{KeyID: keyID}
	}
	if key.Kty != "RSA" {
		return "", &UnsupportedKeyTypeError{KeyID: keyID, KeyType: key.Kty}
	}
	if key.N == "" || key.E == "" {
		return "", &MalformedKeyError{KeyID: keyID, Reason: "missing modulus or exponent"}
	}

	modulus, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return "", &MalformedKeyError{KeyID: keyID, Reason: "modulus is not valid base64url"}
	}
	exponent, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return "", &MalformedKeyError{KeyID: keyID, Reason: "exponent is not valid base64url"}
	}

	if bits := new(big.Int).SetBytes(modulus).BitLen(); bits < minModulusBits {
		return "", &WeakKeyError{KeyID: keyID, Bits: bits}
	}

	return encodePublicKeyPEM(modulus, exponent), nil
}

// fetchKeySet retrieves the key set with a bounded retry loop: a fixed
// number of attempts separated by a fixed delay, each failing fast on
// a transport error or a non-2xx status.
func (c *Client) fetchKeySet(ctx context.Context) (*keySet, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchMaxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(fetchRetryDelay)
			c.warnf("retrying key set fetch (attempt %d of %d): %v", attempt, fetchMaxAttempts, lastErr)
		}

		set, err := c.fetchKeySetOnce(ctx)
		if err == nil {
			c.count("jwks_fetches", map[string]string{"outcome": "success"})
			return set, nil
		}
		lastErr = err
		c.count("jwks_fetches", map[string]string{"outcome": "failure"})
	}

	c.errorf("key set fetch failed after %d attempts: %v", fetchMaxAttempts, lastErr)
	return nil, &KeySetFetchError{URL: c.keySetURL, Attempts: fetchMaxAttempts, Err: lastErr}
}

func (c *Client) fetchKeySetOnce(ctx context.Context) (*keySet, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keySetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not build key set request: %w", err)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("request returned status %d %s", response.StatusCode, http.StatusText(response.StatusCode))
	}

	var set keySet
	if err := json.NewDecoder(io.LimitReader(response.Body, maxResponseBytes)).Decode(&set); err != nil {
		return nil, fmt.Errorf("could not decode key set: %w", err)
	}

	return &set, nil
}

func (c *Client) debugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}

func (c *Client) warnf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Warnf(format, args...)
	}
}

func (c *Client) errorf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Errorf(format, args...)
	}
}

func (c *Client) count(name string, tags map[string]string) {
	if c.metrics != nil {
		c.metrics.IncCounter(name, tags)
	}
}

func (c *Client) gauge(name string, value float64, tags map[string]string) {
	if c.metrics != nil {
		c.metrics.SetGauge(name, value, tags)
	}
}
