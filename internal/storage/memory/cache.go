package memory

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// cacheEntry is one result-cache row: a cached value plus its expiry.
type cacheEntry struct {
	value     interface{}
	expiresAt time.Time
}

// resultCache is the per-store query result cache described in spec.md
// §4.2: keyed lookups with TTL expiry and probabilistic size-capped
// eviction (oldest-expiring 20% dropped once the table exceeds maxSize).
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	maxSize int
	ttl     time.Duration
}

func newResultCache(maxSize int, ttl time.Duration) *resultCache {
	if maxSize <= 0 {
		maxSize = 10_000
	}
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &resultCache{entries: make(map[string]cacheEntry), maxSize: maxSize, ttl: ttl}
}

// outgoingByTypeKey builds the cache key for outgoing-by-type queries,
// per spec.md §4.2: "(store, :outgoing_edges, source_id, type)".
func outgoingByTypeKey(store, sourceID, edgeType string) string {
	return fmt.Sprintf("%s|outgoing_edges|%s|%s", store, sourceID, edgeType)
}

// get returns (value, true) on a live hit; otherwise (nil, false). An
// expired entry is deleted as part of the miss.
func (c *resultCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// put inserts value under key with the given ttl (falling back to the
// cache default when ttl <= 0), then probabilistically evicts if the
// table has grown past maxSize.
func (c *resultCache) put(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(ttl)}
	if len(c.entries) > c.maxSize && rand.Intn(100) == 0 {
		c.evictOldestLocked(0.20)
	}
}

// invalidate removes a single key.
func (c *resultCache) invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// invalidatePrefix removes every key with the given prefix, used when a
// write touches an entity whose exact cache key set isn't known (e.g. any
// edge change involving a node as source).
func (c *resultCache) invalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
}

// evictOldestLocked sorts entries by expiresAt ascending and deletes the
// oldest fraction. Caller must hold c.mu.
func (c *resultCache) evictOldestLocked(fraction float64) {
	type kv struct {
		key string
		exp time.Time
	}
	rows := make([]kv, 0, len(c.entries))
	for k, e := range c.entries {
		rows = append(rows, kv{k, e.expiresAt})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].exp.Before(rows[j].exp) })
	n := int(float64(len(rows)) * fraction)
	for i := 0; i < n; i++ {
		delete(c.entries, rows[i].key)
	}
}

// pathEntry is one Dijkstra path-cache row.
type pathEntry struct {
	nodes     []string
	weight    float64
	expiresAt time.Time
}

// pathCache is the Dijkstra result cache from spec.md §4.3.2: TTL 300s,
// max 1000 entries, evict oldest 25% when over the cap.
type pathCache struct {
	mu      sync.Mutex
	entries map[string]pathEntry
	maxSize int
	ttl     time.Duration
}

func newPathCache(maxSize int, ttl time.Duration) *pathCache {
	if maxSize <= 0 {
		maxSize = 1_000
	}
	if ttl <= 0 {
		ttl = 300 * time.Second
	}
	return &pathCache{entries: make(map[string]pathEntry), maxSize: maxSize, ttl: ttl}
}

// clear empties the path cache. Used on edge mutation, since a topology
// or weight change can invalidate arbitrarily many cached paths at once.
func (c *pathCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]pathEntry)
}

func (c *pathCache) get(key string) ([]string, float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, 0, false
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, 0, false
	}
	return e.nodes, e.weight, true
}

func (c *pathCache) put(key string, nodes []string, weight float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = pathEntry{nodes: nodes, weight: weight, expiresAt: time.Now().Add(c.ttl)}
	if len(c.entries) > c.maxSize {
		c.evictOldestLocked(0.25)
	}
}

func (c *pathCache) evictOldestLocked(fraction float64) {
	type kv struct {
		key string
		exp time.Time
	}
	rows := make([]kv, 0, len(c.entries))
	for k, e := range c.entries {
		rows = append(rows, kv{k, e.expiresAt})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].exp.Before(rows[j].exp) })
	n := int(float64(len(rows)) * fraction)
	for i := 0; i < n; i++ {
		delete(c.entries, rows[i].key)
	}
}

// pathCacheKey hashes the Dijkstra option tuple into a cache key, per
// spec.md §4.3.2.
func pathCacheKey(store, source, target, weightProp string, defaultWeight float64, preferLower bool, direction, edgeType string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%v|%v|%s|%s", store, source, target, weightProp, defaultWeight, preferLower, direction, edgeType)
}

