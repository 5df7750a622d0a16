package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time {
	return f.current
}

func (f *fakeClock) advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestCache(t *testing.T, maxSize int, opts ...Option) (*Cache, *fakeClock) {
	t.Helper()

	c, err := New(maxSize, opts...)
	require.NoError(t, err)

	clock := &fakeClock{current: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)}
	c.now = clock.now
	return c, clock
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name          string
		maxSize       int
		opts          []Option
		expectedError string
	}{
		{
			name:    "it accepts a positive max size",
			maxSize: 1,
		},
		{
			name:    "it accepts a positive ttl",
			maxSize: 10,
			opts:    []Option{WithTTL(time.Minute)},
		},
		{
			name:          "it rejects a zero max size",
			maxSize:       0,
			expectedError: "invalid cache configuration: max size must be positive, got 0",
		},
		{
			name:          "it rejects a negative max size",
			maxSize:       -5,
			expectedError: "invalid cache configuration: max size must be positive, got -5",
		},
		{
			name:          "it rejects a zero ttl",
			maxSize:       10,
			opts:          []Option{WithTTL(0)},
			expectedError: "invalid cache configuration: ttl must be positive, got 0s",
		},
		{
			name:          "it rejects a negative ttl",
			maxSize:       10,
			opts:          []Option{WithTTL(-time.Second)},
			expectedError: "invalid cache configuration: ttl must be positive, got -1s",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			c, err := New(testCase.maxSize, testCase.opts...)
			if testCase.expectedError != "" {
				assert.EqualError(t, err, testCase.expectedError)
				var configErr *ConfigError
				assert.ErrorAs(t, err, &configErr)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestCacheGetAndSet(t *testing.T) {
	c, _ := newTestCache(t, 3)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "1")
	value, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", value)
}

func TestCacheCapacityInvariant(t *testing.T) {
	const maxSize = 4

	c, _ := newTestCache(t, maxSize)

	// Inserting maxSize+k distinct keys must leave exactly maxSize
	// entries, and they must be the most recently touched ones.
	for i := 0; i < maxSize+3; i++ {
		c.Set(fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i))
		assert.LessOrEqual(t, c.Len(), maxSize)
	}

	assert.Equal(t, maxSize, c.Len())
	for i := 0; i < 3; i++ {
		assert.False(t, c.Has(fmt.Sprintf("key-%d", i)), "oldest keys should have been evicted")
	}
	for i := 3; i < maxSize+3; i++ {
		assert.True(t, c.Has(fmt.Sprintf("key-%d", i)))
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("a", "1")
	c.Set("b", "2")

	// Touch "a" so that "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("c", "3")

	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
	assert.True(t, c.Has("c"))
}

func TestCacheSetDoesNotOverwrite(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("key", "first")
	c.Set("key", "second")

	value, ok := c.Get("key")
	require.True(t, ok)
	assert.Equal(t, "first", value, "the first cached value is authoritative")
	assert.Equal(t, 1, c.Len())
}

func TestCacheSetRefreshesRecencyOfExistingKey(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("a", "1")
	c.Set("b", "2")

	// Re-setting "a" refreshes its recency even though the value is kept.
	c.Set("a", "ignored")
	c.Set("c", "3")

	assert.True(t, c.Has("a"))
	assert.False(t, c.Has("b"))
}

func TestCacheTTLExpiry(t *testing.T) {
	c, clock := newTestCache(t, 5, WithTTL(time.Minute))

	c.Set("key", "value")

	clock.advance(59 * time.Second)
	assert.True(t, c.Has("key"))

	clock.advance(2 * time.Second)
	_, ok := c.Get("key")
	assert.False(t, ok, "entry older than the ttl should be gone")
	assert.Equal(t, 0, c.Len(), "expired entry should have been removed")
}

func TestCacheGetRefreshesTTLClock(t *testing.T) {
	c, clock := newTestCache(t, 5, WithTTL(time.Minute))

	c.Set("key", "value")

	clock.advance(45 * time.Second)
	_, ok := c.Get("key")
	require.True(t, ok)

	// 45s after the Get, 90s after the Set. Alive only because Get
	// restarted the idle clock.
	clock.advance(45 * time.Second)
	_, ok = c.Get("key")
	assert.True(t, ok)
}

func TestCacheHasDoesNotRefreshTTLClock(t *testing.T) {
	c, clock := newTestCache(t, 5, WithTTL(time.Minute))

	c.Set("key", "value")

	clock.advance(45 * time.Second)
	assert.True(t, c.Has("key"))

	clock.advance(30 * time.Second)
	assert.False(t, c.Has("key"), "Has must not have restarted the idle clock")
}

func TestCacheHasDoesNotRefreshRecency(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("a", "1")
	c.Set("b", "2")

	// A peek at "a" must not save it from eviction.
	require.True(t, c.Has("a"))
	c.Set("c", "3")

	assert.False(t, c.Has("a"))
	assert.True(t, c.Has("b"))
	assert.True(t, c.Has("c"))
}

func TestCacheDelete(t *testing.T) {
	c, _ := newTestCache(t, 2)

	c.Set("key", "value")

	assert.True(t, c.Delete("key"))
	assert.False(t, c.Delete("key"))
	assert.False(t, c.Has("key"))
	assert.Equal(t, 0, c.Len())
}

func TestCacheClear(t *testing.T) {
	c, _ := newTestCache(t, 5)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has("a"))

	// The cache stays usable after Clear.
	c.Set("c", "3")
	value, ok := c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "3", value)
}

func TestCacheStats(t *testing.T) {
	c, _ := newTestCache(t, 7, WithTTL(time.Hour))

	c.Set("a", "1")
	c.Set("b", "2")

	assert.Equal(t, Stats{Size: 2, MaxSize: 7, TTL: time.Hour}, c.Stats())
}

func TestCacheEvictionAndExpiryInterleaved(t *testing.T) {
	c, clock := newTestCache(t, 2, WithTTL(time.Minute))

	c.Set("a", "1")
	clock.advance(30 * time.Second)
	c.Set("b", "2")

	clock.advance(45 * time.Second)

	// "a" is now 75s idle and expired; "b" is 45s idle and alive.
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("b")
	assert.True(t, ok)

	// Capacity is available again after expiry removed "a".
	c.Set("c", "3")
	c.Set("d", "4")
	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Has("b"))
}
