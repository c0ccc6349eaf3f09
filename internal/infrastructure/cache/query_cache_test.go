package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *QueryCache {
	t.Helper()
	c := NewQueryCache(WithCleanupInterval(time.Hour))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetPut(t *testing.T) {
	c := newTestCache(t)

	_, ok := c.Get("category:get:1")
	assert.False(t, ok)

	c.Put("category:get:1", "value", time.Minute)

	got, ok := c.Get("category:get:1")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestExpiredEntryIsMissAndRemoved(t *testing.T) {
	c := newTestCache(t)

	c.Put("mine:get:1", "value", -time.Second)

	_, ok := c.Get("mine:get:1")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestPutOverwrites(t *testing.T) {
	c := newTestCache(t)

	c.Put("k", "old", time.Minute)
	c.Put("k", "new", time.Minute)

	got, _ := c.Get("k")
	assert.Equal(t, "new", got)
	assert.Equal(t, 1, c.Len())
}

func TestInvalidateSubstring(t *testing.T) {
	c := newTestCache(t)

	c.Put("subtype:get:1", 1, time.Minute)
	c.Put("subtype:list", 2, time.Minute)
	c.Put("category:list", 3, time.Minute)

	removed := c.Invalidate("subtype:")
	assert.Equal(t, 2, removed)

	_, ok := c.Get("category:list")
	assert.True(t, ok)
}

func TestInvalidateEmptyPatternClearsAll(t *testing.T) {
	c := newTestCache(t)

	c.Put("a", 1, time.Minute)
	c.Put("b", 2, time.Minute)

	assert.Equal(t, 2, c.Invalidate(""))
	assert.Equal(t, 0, c.Len())
}

func TestInvalidateKeys(t *testing.T) {
	c := newTestCache(t)

	c.Put("partner:get:1", 1, time.Minute)
	c.Put("partner:list", 2, time.Minute)
	c.Put("partner:stats", 3, time.Minute)

	c.InvalidateKeys("partner:get:1", "partner:list", "missing")

	_, ok := c.Get("partner:stats")
	assert.True(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestStats(t *testing.T) {
	c := newTestCache(t)

	c.Put("k", 1, time.Minute)
	c.Get("k")
	c.Get("absent")

	hits, misses := c.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	c.ResetStats()
	hits, misses = c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestDoCleanupRemovesOnlyExpired(t *testing.T) {
	c := newTestCache(t)

	c.Put("live", 1, time.Minute)
	c.Put("dead", 2, -time.Second)

	c.doCleanup()

	assert.Equal(t, 1, c.Len())
}

func TestCloseIsIdempotent(t *testing.T) {
	c := NewQueryCache(WithCleanupInterval(time.Hour))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestKeyDeterministic(t *testing.T) {
	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")

	k1 := Key("subtype", "list", []any{1, 20}, map[string]any{"mine_id": id, "category_id": "abc"})
	k2 := Key("subtype", "list", []any{1, 20}, map[string]any{"category_id": "abc", "mine_id": id})

	assert.Equal(t, k1, k2)
	assert.Equal(t, "subtype:list:1:20:category_id=abc:mine_id=11111111-2222-3333-4444-555555555555", k1)
}

func TestKeyWithoutArgs(t *testing.T) {
	assert.Equal(t, "category:select", Key("category", "select", nil, nil))
}
