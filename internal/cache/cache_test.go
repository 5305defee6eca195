package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
)

func openTestCache(t *testing.T, opts Options) *Cache {
	t.Helper()
	opts.InMemory = true
	c, err := Open(opts)
	assert.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGetPutRoundTrip(t *testing.T) {
	c := openTestCache(t, Options{})

	_, ok := c.Get("What is PERC?")
	assert.False(t, ok)

	c.Put("What is PERC?", "A passivated rear cell.")

	// Normalization: whitespace and case do not matter.
	answer, ok := c.Get("  what is perc?  ")
	assert.True(t, ok)
	assert.Equal(t, "A passivated rear cell.", answer)

	stats := c.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestTTLExpiry(t *testing.T) {
	c := openTestCache(t, Options{TTL: time.Hour})

	now := time.Unix(1_700_000_000, 0)
	c.Now = func() time.Time { return now }

	c.Put("q", "a")
	_, ok := c.Get("q")
	assert.True(t, ok)

	// Past the TTL the entry is a miss and gets recomputed.
	now = now.Add(2 * time.Hour)
	_, ok = c.Get("q")
	assert.False(t, ok)

	c.Put("q", "a2")
	answer, ok := c.Get("q")
	assert.True(t, ok)
	assert.Equal(t, "a2", answer)
}

func TestTier2RepopulatesTier1(t *testing.T) {
	c := openTestCache(t, Options{Capacity: 2})

	c.Put("q1", "a1")
	// Evict q1 from the LRU tier.
	c.Put("q2", "a2")
	c.Put("q3", "a3")
	assert.Equal(t, 2, c.lru.len())

	// q1 still answers from the persisted tier and returns to tier 1.
	answer, ok := c.Get("q1")
	assert.True(t, ok)
	assert.Equal(t, "a1", answer)
	_, inLRU := c.lru.get(Key("q1"))
	assert.True(t, inLRU)
}

func TestLRUEvictionOrder(t *testing.T) {
	m := newLRUMap(2)

	m.put("a", Entry{Answer: "1"})
	m.put("b", Entry{Answer: "2"})
	m.get("a") // a becomes most recent
	m.put("c", Entry{Answer: "3"})

	_, ok := m.get("b")
	assert.False(t, ok, "least recently used entry is evicted")
	_, ok = m.get("a")
	assert.True(t, ok)
	_, ok = m.get("c")
	assert.True(t, ok)
}

func TestClearEmptiesBothTiers(t *testing.T) {
	c := openTestCache(t, Options{})

	c.Put("q", "a")
	_, ok := c.Get("q")
	assert.True(t, ok)

	assert.NoError(t, c.Clear())

	_, ok = c.Get("q")
	assert.False(t, ok, "a prior hit must miss after clear")
	assert.Equal(t, 0, c.lru.len())
}

func TestCorruptPersistedEntryIsMiss(t *testing.T) {
	c := openTestCache(t, Options{})

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(Key("q")), []byte("not json"))
	})
	assert.NoError(t, err)

	_, ok := c.Get("q")
	assert.False(t, ok)
}

func TestLastWriteWins(t *testing.T) {
	c := openTestCache(t, Options{})

	c.Put("q", "first")
	c.Put("q", "second")

	answer, ok := c.Get("q")
	assert.True(t, ok)
	assert.Equal(t, "second", answer)
}

func TestConcurrentAccess(t *testing.T) {
	c := openTestCache(t, Options{Capacity: 8})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				q := fmt.Sprintf("q-%d", (i+j)%16)
				c.Put(q, "answer")
				c.Get(q)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	stats := c.Stats()
	assert.Equal(t, uint64(400), stats.Hits+stats.Misses)
}
