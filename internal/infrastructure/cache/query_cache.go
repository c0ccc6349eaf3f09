package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Constants for cache configuration
const (
	defaultCleanupInterval = time.Minute
)

// QueryCache is a process-local TTL cache memoizing repository reads.
// It is advisory only: entries may disappear at any time, and instances
// in different processes are not coherent with each other.
type QueryCache struct {
	entries         sync.Map // map[string]*cacheEntry
	logger          *zap.Logger
	cleanupInterval time.Duration
	stopCh          chan struct{}
	stopped         int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry) isExpired() bool {
	return !time.Now().Before(e.expiresAt)
}

// QueryCacheOption is a functional option for configuring the cache
type QueryCacheOption func(*QueryCache)

// WithLogger sets the logger for the cache
func WithLogger(logger *zap.Logger) QueryCacheOption {
	return func(c *QueryCache) {
		c.logger = logger
	}
}

// WithCleanupInterval sets the background sweep interval
func WithCleanupInterval(interval time.Duration) QueryCacheOption {
	return func(c *QueryCache) {
		c.cleanupInterval = interval
	}
}

// NewQueryCache creates a new query cache and starts its background sweep
func NewQueryCache(opts ...QueryCacheOption) *QueryCache {
	cache := &QueryCache{
		logger:          zap.NewNop(),
		cleanupInterval: defaultCleanupInterval,
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a value from cache. The second return is false when the
// key is missing or expired; expired entries are removed on read.
func (c *QueryCache) Get(key string) (any, bool) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit", zap.String("key", key))
			return entry.value, true
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss", zap.String("key", key))
	return nil, false
}

// Put stores a value with the given TTL, overwriting any existing entry
func (c *QueryCache) Put(key string, value any, ttl time.Duration) {
	c.entries.Store(key, &cacheEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})
	c.logger.Debug("Cached value", zap.String("key", key), zap.Duration("ttl", ttl))
}

// Invalidate removes every key containing the pattern as a substring.
// An empty pattern clears the whole cache. Returns the number of keys
// removed.
func (c *QueryCache) Invalidate(pattern string) int {
	removed := 0
	c.entries.Range(func(key, _ any) bool {
		if pattern == "" || strings.Contains(key.(string), pattern) {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	c.logger.Debug("Invalidated cache entries",
		zap.String("pattern", pattern),
		zap.Int("removed", removed))
	return removed
}

// InvalidateKeys removes the exact keys given
func (c *QueryCache) InvalidateKeys(keys ...string) {
	for _, key := range keys {
		c.entries.Delete(key)
	}
}

// Len returns the number of entries currently stored, expired or not
func (c *QueryCache) Len() int {
	count := 0
	c.entries.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Stats returns cache hit/miss counters
func (c *QueryCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *QueryCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Close stops the background sweep goroutine
func (c *QueryCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// cleanupExpired periodically removes expired entries
func (c *QueryCache) cleanupExpired() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup", zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries
func (c *QueryCache) doCleanup() {
	removed := 0
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry).isExpired() {
			c.entries.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired cache entries", zap.Int("removed", removed))
	}
}
