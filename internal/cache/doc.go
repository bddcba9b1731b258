// Package cache provides a generic LRU cache bounded by total weight.
//
// Entries are weighed by a caller-supplied function, typically the byte size
// of a decoded image. When the total weight exceeds the budget, least
// recently used entries are evicted until it fits again. The most recent
// entry is never evicted, so a single oversized value is still cached.
//
//	sheets := cache.New[string, *image.Buf](64<<20, func(b *image.Buf) int64 {
//	    return int64(b.ByteSize())
//	})
//	buf, err := sheets.GetOrCreate(path, func() (*image.Buf, error) {
//	    b, _, err := image.Load(path)
//	    return b, err
//	})
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation
// (it contains a mutex).
package cache
