// Package cache provides a bounded, string-keyed LRU cache with an
// optional idle time-to-live.
//
// The cache has no knowledge of JWTs or signing keys; it stores opaque
// string values under string keys. Capacity is fixed at construction
// and the least-recently-used entry is evicted when the cache is full.
// When a TTL is configured it is measured from an entry's last access,
// not from its creation.
package cache

import (
	"fmt"
	"sync"
	"time"
)

// ConfigError reports invalid construction arguments. Construction
// fails fast; there is no recovery path for misconfiguration.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid cache configuration: " + e.Reason
}

// entry is a node in the intrusive recency list. Entries are owned
// exclusively by the cache: created on Set, destroyed on eviction,
// expiry, Delete, or Clear.
type entry struct {
	key            string
	value          string
	lastAccessedAt time.Time
	prev, next     *entry
}

// Cache is a fixed-capacity LRU cache. It is safe for concurrent use
// by multiple goroutines.
type Cache struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration // zero means entries never expire by time
	items   map[string]*entry

	// Sentinel nodes keep the list manipulation free of nil checks at
	// the boundaries. head.next is the most recently used entry and
	// tail.prev is the eviction candidate.
	head *entry
	tail *entry

	now func() time.Time
}

// Option configures a Cache.
type Option func(*Cache) error

// WithTTL sets the idle time-to-live for entries. An entry whose age
// since last access exceeds ttl is treated as absent and removed on
// the next lookup.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) error {
		if ttl <= 0 {
			return &ConfigError{Reason: fmt.Sprintf("ttl must be positive, got %s", ttl)}
		}
		c.ttl = ttl
		return nil
	}
}

// New builds a Cache holding at most maxSize entries.
func New(maxSize int, opts ...Option) (*Cache, error) {
	if maxSize <= 0 {
		return nil, &ConfigError{Reason: fmt.Sprintf("max size must be positive, got %d", maxSize)}
	}

	c := &Cache{
		maxSize: maxSize,
		items:   make(map[string]*entry),
		head:    &entry{},
		tail:    &entry{},
		now:     time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// Get returns the value stored under key, refreshing the entry's
// recency position and last-access timestamp. An entry past its TTL is
// removed and reported as absent.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return "", false
	}
	if c.expired(e) {
		c.remove(e)
		return "", false
	}

	e.lastAccessedAt = c.now()
	c.moveToFront(e)
	return e.value, true
}

// Set stores value under key, evicting the least-recently-used entry
// when the cache is full.
//
// If the key is already present the entry's recency and timestamp are
// refreshed but the stored value is NOT replaced: the first value
// cached for a key stays authoritative until the entry is evicted,
// expired, or deleted.
func (c *Cache) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.lastAccessedAt = c.now()
		c.moveToFront(e)
		return
	}

	if len(c.items) >= c.maxSize {
		c.remove(c.tail.prev)
	}

	e := &entry{key: key, value: value, lastAccessedAt: c.now()}
	c.items[key] = e
	c.pushFront(e)
}

// Has reports whether key is present. Unlike Get it is a peek, not a
// touch: neither the recency position nor the TTL clock is refreshed.
// An entry past its TTL is removed as a side effect.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	if c.expired(e) {
		c.remove(e)
		return false
	}
	return true
}

// Delete removes the entry stored under key and reports whether an
// entry was present.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return false
	}
	c.remove(e)
	return true
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the number of entries currently stored. Entries past
// their TTL that have not yet been looked up still count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats describes the current shape and configuration of the cache.
type Stats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
}

// Stats returns the cache's current size and configuration.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.items), MaxSize: c.maxSize, TTL: c.ttl}
}

func (c *Cache) expired(e *entry) bool {
	return c.ttl > 0 && c.now().Sub(e.lastAccessedAt) > c.ttl
}

// remove unlinks e and drops it from the index. Callers hold c.mu.
func (c *Cache) remove(e *entry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	delete(c.items, e.key)
}

func (c *Cache) pushFront(e *entry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *Cache) moveToFront(e *entry) {
	if c.head.next == e {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev
	c.pushFront(e)
}
