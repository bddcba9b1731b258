package cache

import (
	"errors"
	"strconv"
	"sync"
	"testing"
)

// put stores value under key, replacing any entry.
func put[K comparable, V any](c *Cache[K, V], key K, value V) {
	c.mu.Lock()
	c.set(key, value)
	c.mu.Unlock()
}

// cached reports whether key is present without touching the statistics.
func cached[K comparable, V any](c *Cache[K, V], key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New[string, int](3, nil)
	for i, k := range []string{"a", "b", "c"} {
		_, _ = c.GetOrCreate(k, func() (int, error) { return i, nil })
	}
	_, _ = c.GetOrCreate("a", nil)
	_, _ = c.GetOrCreate("d", func() (int, error) { return 4, nil })

	if cached(c, "b") {
		t.Error("least recently used entry b not evicted")
	}
	for _, k := range []string{"a", "c", "d"} {
		if !cached(c, k) {
			t.Errorf("entry %s evicted", k)
		}
	}
	if s := c.Stats(); s.Evictions != 1 || s.Len != 3 || s.Hits != 1 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCache_Weight(t *testing.T) {
	c := New[string, []byte](10, func(b []byte) int64 { return int64(len(b)) })
	put(c, "a", make([]byte, 4))
	put(c, "b", make([]byte, 4))
	put(c, "c", make([]byte, 4))

	s := c.Stats()
	if s.Len != 2 || s.Weight != 8 {
		t.Errorf("Stats() = %+v, want 2 entries of weight 8", s)
	}
	if cached(c, "a") {
		t.Error("oldest entry not evicted")
	}

	// An entry larger than the limit is still stored on its own.
	put(c, "huge", make([]byte, 64))
	if !cached(c, "huge") {
		t.Error("oversized entry dropped")
	}
	if s := c.Stats(); s.Len != 1 {
		t.Errorf("Len = %d, want 1", s.Len)
	}

	put(c, "huge", make([]byte, 2))
	if s := c.Stats(); s.Weight != 2 || s.Len != 1 {
		t.Errorf("replacing an entry left %d entries of weight %d, want 1 of 2", s.Len, s.Weight)
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, int](0, nil)
	calls := 0
	create := func() (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := c.GetOrCreate("k", create)
		if err != nil || v != 42 {
			t.Fatalf("GetOrCreate() = %d, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrCreate("bad", func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrCreate error = %v, want boom", err)
	}
	if cached(c, "bad") {
		t.Error("failed create was cached")
	}

	s := c.Stats()
	if s.Hits != 2 || s.Misses != 2 {
		t.Errorf("Stats() hits %d misses %d, want 2 and 2", s.Hits, s.Misses)
	}
	if s.HitRate != 0.5 {
		t.Errorf("HitRate = %v, want 0.5", s.HitRate)
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[string, int](0, nil)
	put(c, "a", 1)
	put(c, "b", 2)
	_, _ = c.GetOrCreate("a", nil)

	c.Clear()
	s := c.Stats()
	if s.Len != 0 || s.Weight != 0 {
		t.Errorf("Clear() left %d entries of weight %d", s.Len, s.Weight)
	}
	if s.Hits != 1 {
		t.Errorf("Clear() reset hits to %d", s.Hits)
	}
	if v, err := c.GetOrCreate("c", func() (int, error) { return 3, nil }); err != nil || v != 3 || !cached(c, "c") {
		t.Error("cache unusable after Clear")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](50, nil)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*7 + i) % 100)
				_, _ = c.GetOrCreate(k, func() (int, error) { return i, nil })
				_ = c.Stats()
			}
		}()
	}
	wg.Wait()
	if s := c.Stats(); s.Len > 50 || s.Weight > 50 {
		t.Errorf("Stats() = %+v exceeds limit", s)
	}
}

func BenchmarkCacheHit(b *testing.B) {
	c := New[string, int](1000, nil)
	for i := range 100 {
		put(c, strconv.Itoa(i), i)
	}

	for b.Loop() {
		_, _ = c.GetOrCreate("50", nil)
	}
}

func BenchmarkCacheGetOrCreate(b *testing.B) {
	c := New[string, int](64, nil)
	i := 0

	for b.Loop() {
		i++
		_, _ = c.GetOrCreate(strconv.Itoa(i%100), func() (int, error) {
			return i, nil
		})
	}
}
