// Package cache provides a small generic LRU cache.
//
//	c := cache.New[uint64, string](4096)
//	s := c.GetOrCreate(key, func() string { return render(key) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
