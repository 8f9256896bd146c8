// Package cache provides the small generic LRU used to memoize derived
// data in the edit pipeline: scaled brush rasters, compiled formulas and
// blur kernels.
//
//	c := cache.New[string, int](100)
//	c.Set("key", 42)
//	value, ok := c.Get("key")
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
