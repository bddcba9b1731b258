package cache

import "sync"

// Cache is a generic thread-safe LRU cache bounded by total weight.
//
// Cache is safe for concurrent use.
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*node[K, V]
	weigh   func(V) int64
	limit   int64

	// head is the most recently used entry, tail the least.
	head, tail *node[K, V]
	weight     int64

	hits, misses, evictions uint64
}

// node is an entry in the doubly-linked recency list.
type node[K comparable, V any] struct {
	key        K
	value      V
	weight     int64
	prev, next *node[K, V]
}

// New creates a cache holding at most limit total weight.
// A limit of 0 means unlimited. A nil weigh counts every entry as 1.
func New[K comparable, V any](limit int64, weigh func(V) int64) *Cache[K, V] {
	if weigh == nil {
		weigh = func(V) int64 { return 1 }
	}
	return &Cache[K, V]{
		entries: make(map[K]*node[K, V]),
		weigh:   weigh,
		limit:   limit,
	}
}

// GetOrCreate returns the cached value or creates and stores it.
// create is called under lock, so concurrent callers never create the same
// key twice. Errors from create are returned and nothing is stored.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n, ok := c.entries[key]; ok {
		c.hits++
		c.moveToFront(n)
		return n.value, nil
	}
	c.misses++

	value, err := create()
	if err != nil {
		var zero V
		return zero, err
	}
	c.set(key, value)
	return value, nil
}

// Clear removes all entries from the cache. Statistics are kept.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*node[K, V])
	c.head, c.tail = nil, nil
	c.weight = 0
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Weight:    c.weight,
		Limit:     c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// set stores value, replacing any previous value for key, and evicts least
// recently used entries while the cache is over its limit. Caller must hold
// c.mu.
func (c *Cache[K, V]) set(key K, value V) {
	if old, ok := c.entries[key]; ok {
		c.remove(old)
	}
	n := &node[K, V]{key: key, value: value, weight: c.weigh(value)}
	c.entries[key] = n
	c.pushFront(n)
	c.weight += n.weight

	for c.limit > 0 && c.weight > c.limit && c.tail != n {
		c.remove(c.tail)
		c.evictions++
	}
}

// remove drops n from the map and the list. Caller must hold c.mu.
func (c *Cache[K, V]) remove(n *node[K, V]) {
	c.unlink(n)
	delete(c.entries, n.key)
	c.weight -= n.weight
}

func (c *Cache[K, V]) pushFront(n *node[K, V]) {
	n.prev = nil
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
}

func (c *Cache[K, V]) moveToFront(n *node[K, V]) {
	if n == c.head {
		return
	}
	c.unlink(n)
	c.pushFront(n)
}

func (c *Cache[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	n.prev, n.next = nil, nil
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Weight is the current total weight.
	Weight int64
	// Limit is the weight budget, 0 for unlimited.
	Limit int64
	// Hits is the number of lookups that found an entry.
	Hits uint64
	// Misses is the number of lookups that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first lookup.
	HitRate float64
	// Evictions is the number of entries dropped to stay within Limit.
	Evictions uint64
}
