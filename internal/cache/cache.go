package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// DefaultTTL matches the original 24h answer expiry.
const DefaultTTL = 24 * time.Hour

// DefaultCapacity bounds the in-process tier.
const DefaultCapacity = 256

// Entry is the persisted value for one normalized query key.
type Entry struct {
	Answer    string `json:"answer"`
	Timestamp int64  `json:"ts"`
	Hits      int    `json:"hits"`
}

// Stats are the counters since process start.
type Stats struct {
	Hits    uint64  `json:"hits"`
	Misses  uint64  `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Options configure a Cache.
type Options struct {
	// Dir is the badger directory for the persisted tier. Ignored when
	// InMemory is set.
	Dir      string
	InMemory bool
	Capacity int
	TTL      time.Duration
}

// Cache is the two-tier answer cache: a bounded in-process LRU in front of a
// badger-backed persisted store. All tier-1 state, including the counters,
// is guarded by one mutex; tier-2 writes are last-write-wins.
type Cache struct {
	mu     sync.Mutex
	lru    *lruMap
	db     *badger.DB
	ttl    time.Duration
	hits   uint64
	misses uint64

	// Now is injectable for TTL tests.
	Now func() time.Time
}

// Open creates the cache, opening (or creating) the badger store.
func Open(opts Options) (*Cache, error) {
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}

	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts = badger.DefaultOptions(opts.Dir)
	}
	bopts = bopts.WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	return &Cache{
		lru: newLRUMap(opts.Capacity),
		db:  db,
		ttl: opts.TTL,
		Now: time.Now,
	}, nil
}

// Key normalizes a query and hashes it. The same normalization feeds both
// tiers so they always agree on identity.
func Key(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached answer for the query, checking the in-process tier
// first and repopulating it from the persisted tier on a tier-2 hit. Expired
// and unreadable entries are misses.
func (c *Cache) Get(query string) (string, bool) {
	key := Key(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.lru.get(key); ok {
		if c.fresh(entry) {
			c.hits++
			return entry.Answer, true
		}
		c.lru.remove(key)
	}

	entry, ok := c.readPersisted(key)
	if ok && c.fresh(entry) {
		c.lru.put(key, entry)
		c.hits++
		return entry.Answer, true
	}

	c.misses++
	return "", false
}

// Put stores an answer in both tiers. The persisted write is best-effort;
// losing it only costs cache freshness.
func (c *Cache) Put(query, answer string) {
	key := Key(query)
	entry := Entry{Answer: answer, Timestamp: c.Now().Unix()}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.put(key, entry)
	c.writePersisted(key, entry)
}

// Stats returns the hit/miss counters since process start.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Clear drops both tiers. It holds the mutex throughout so no reader sees
// one tier cleared and the other populated.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.reset()
	if err := c.db.DropAll(); err != nil {
		return fmt.Errorf("failed to clear persisted cache: %w", err)
	}
	return nil
}

// Close releases the persisted store.
func (c *Cache) Close() error {
	return c.db.Close()
}

func (c *Cache) fresh(e Entry) bool {
	return c.Now().Unix()-e.Timestamp < int64(c.ttl/time.Second)
}

func (c *Cache) readPersisted(key string) (Entry, bool) {
	var entry Entry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, false
	}
	if err != nil {
		// Corrupt or unreadable entries are treated as absent.
		log.Printf("Warning: cache read error for key %.12s: %v", key, err)
		return Entry{}, false
	}
	return entry, true
}

func (c *Cache) writePersisted(key string, entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("Warning: cache encode error: %v", err)
		return
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), data).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		log.Printf("Warning: cache write error for key %.12s: %v", key, err)
	}
}
